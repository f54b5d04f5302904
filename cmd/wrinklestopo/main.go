// SPDX-License-Identifier: Apache-2.0

// wrinklestopo loads a timeline document, builds its topological map,
// and prints either a projection's segment table or the answer to a
// single project_instantaneous_cc query.
//
// Usage:
//
//	wrinklestopo -doc timeline.json -from tl -to a
//	wrinklestopo -doc timeline.json -from tl -to a/media -at 3
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wrinkles-go/wrinkles/bundle"
	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/docloader"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/projection"
	"github.com/wrinkles-go/wrinkles/topomap"
)

func main() {
	docPath := flag.String("doc", "", "path to a .json/.wrinklesz/.wrinklesd document (required)")
	from := flag.String("from", "", "source space, \"name\" or \"name/media\" (required)")
	to := flag.String("to", "", "destination space, \"name\" or \"name/media\" (required)")
	at := flag.String("at", "", "if set, print the instantaneous projection of this ordinate instead of the segment table")
	flag.Parse()

	if err := run(*docPath, *from, *to, *at); err != nil {
		fmt.Fprintf(os.Stderr, "wrinklestopo: %v\n", err)
		os.Exit(1)
	}
}

func run(docPath, from, to, at string) error {
	if docPath == "" || from == "" || to == "" {
		return fmt.Errorf("-doc, -from and -to are all required")
	}

	root, err := loadDocument(docPath)
	if err != nil {
		return err
	}

	m, err := topomap.Build(root)
	if err != nil {
		return fmt.Errorf("build topological map: %w", err)
	}

	fromSpace, err := resolveSpace(root, from)
	if err != nil {
		return fmt.Errorf("resolve -from %q: %w", from, err)
	}
	toSpace, err := resolveSpace(root, to)
	if err != nil {
		return fmt.Errorf("resolve -to %q: %w", to, err)
	}

	builder := projection.NewBuilder(m)
	table, err := builder.BuildProjection(fromSpace)
	if err != nil {
		return fmt.Errorf("build projection: %w", err)
	}
	proj, err := builder.ProjectionTo(table, toSpace)
	if err != nil {
		return fmt.Errorf("project to %q: %w", to, err)
	}

	if at != "" {
		x, err := parseOrdinate(at)
		if err != nil {
			return fmt.Errorf("parse -at: %w", err)
		}
		y, err := proj.ProjectInstantaneous(x)
		if err != nil {
			return err
		}
		fmt.Println(y.String())
		return nil
	}

	printSegmentTable(proj)
	return nil
}

func loadDocument(path string) (composition.Node, error) {
	switch {
	case strings.HasSuffix(path, ".wrinklesz"):
		return bundle.ReadWrinklesZ(path)
	case strings.HasSuffix(path, ".wrinklesd"):
		return bundle.ReadWrinklesD(bundle.DefaultFS, path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return docloader.LoadBytes(data)
	}
}

// resolveSpace finds the node named by the first path component of
// ref (walking the whole tree) and returns its output space, or its
// media space when ref has a "/media" suffix and the node is a Clip.
func resolveSpace(root composition.Node, ref string) (composition.Space, error) {
	nodeName, spaceName, _ := strings.Cut(ref, "/")

	var found composition.Node
	visit := func(n composition.Node) {
		if n.Name() == nodeName {
			found = n
		}
	}
	composition.Walk(root, visit)

	if found == nil {
		return composition.Space{}, fmt.Errorf("no node named %q", nodeName)
	}

	if spaceName == "media" {
		clip, ok := found.(*composition.Clip)
		if !ok {
			return composition.Space{}, fmt.Errorf("%q is not a Clip, has no media space", nodeName)
		}
		return clip.MediaSpace(), nil
	}
	return found.OutputSpace(), nil
}

func parseOrdinate(s string) (ordinate.Ordinate, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return ordinate.Zero, err
		}
		d, err := strconv.ParseInt(den, 10, 64)
		if err != nil {
			return ordinate.Zero, err
		}
		return ordinate.FromFrac(n, d), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ordinate.Zero, err
	}
	return ordinate.FromFloat64(f), nil
}

func printSegmentTable(proj *projection.Projection) {
	fmt.Printf("%-4s %-8s %-24s %-24s\n", "idx", "kind", "input", "output")
	for i, seg := range proj.Topo.Segments {
		out, err := seg.ProjectInterval(seg.InputBounds())
		outStr := "?"
		if err == nil {
			outStr = out.String()
		}
		fmt.Printf("%-4d %-8s %-24s %-24s\n", i, seg.Kind(), seg.InputBounds().String(), outStr)
	}
}
