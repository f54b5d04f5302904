// SPDX-License-Identifier: Apache-2.0

package ordinate

import "fmt"

// Sampling is the discrete-sampling triple of spec §3:
// { sample_rate, start_index, ordinate_origin }. It maps an integer
// index i to the clopen ordinate interval
// [origin + (i-start)/rate, origin + (i+1-start)/rate), and inverts
// an ordinate o to floor(rate*(o-origin)) + start.
//
// A Sampling is a property of a (space, domain) pair on a composition
// item — absent for items whose space is purely continuous, which is
// why callers hold a *Sampling rather than a value (nil means "no
// discrete info," matching spec §7's NoDiscreteInfo error).
type Sampling struct {
	Rate         Ordinate // must be > 0
	StartIndex   int64
	OriginOffset Ordinate
}

// NewSampling builds a Sampling, validating rate > 0 per spec §3.
func NewSampling(rate Ordinate, startIndex int64, origin Ordinate) (*Sampling, error) {
	if !rate.IsFinite() || rate.Sign() <= 0 {
		return nil, fmt.Errorf("ordinate: sampling rate must be a positive finite ordinate")
	}
	return &Sampling{Rate: rate, StartIndex: startIndex, OriginOffset: origin}, nil
}

// IntervalOf returns the clopen ordinate interval covered by index i.
func (s *Sampling) IntervalOf(i int64) Interval {
	offset := FromInt64(i - s.StartIndex)
	start := s.OriginOffset.Add(offset.Div(s.Rate))
	end := s.OriginOffset.Add(offset.Add(FromInt64(1)).Div(s.Rate))
	return NewInterval(start, end)
}

// IndexAt returns the sample index whose clopen interval contains o:
// floor(rate*(o-origin)) + start_index.
func (s *Sampling) IndexAt(o Ordinate) (int64, error) {
	scaled := o.Sub(s.OriginOffset).Mul(s.Rate)
	n, err := scaled.Floor()
	if err != nil {
		return 0, err
	}
	return n + s.StartIndex, nil
}

// Count returns the number of discrete samples spanned by iv:
// floor(rate*duration), per spec §4.A. The boundary rule (a sample i
// belongs to iv iff its interval's start lies in iv) is implemented
// by IndicesIn; the two agree when iv's endpoints lie on sample
// boundaries, and can differ by one otherwise.
func (s *Sampling) Count(iv Interval) (int64, error) {
	if iv.IsEmpty() {
		return 0, nil
	}
	scaled := iv.Duration().Mul(s.Rate)
	n, err := scaled.Floor()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// IndicesIn returns [firstIndex, lastIndexExclusive) — the half-open
// range of sample indices i whose ordinate interval's start lies in
// iv, per spec §4.A's clopen start-inclusive boundary rule.
func (s *Sampling) IndicesIn(iv Interval) (first, lastExclusive int64, err error) {
	if iv.IsEmpty() {
		i, e := s.IndexAt(iv.Start())
		if e != nil {
			return 0, 0, e
		}
		return i, i, nil
	}
	// ceilIndex is the first index whose interval starts at or after
	// o: ceil(rate*(o-origin)) + start_index.
	ceilIndex := func(o Ordinate) (int64, error) {
		n, err := o.Sub(s.OriginOffset).Mul(s.Rate).Neg().Floor()
		if err != nil {
			return 0, err
		}
		return -n + s.StartIndex, nil
	}
	first, err = ceilIndex(iv.Start())
	if err != nil {
		return 0, 0, err
	}
	lastExclusive, err = ceilIndex(iv.End())
	if err != nil {
		return 0, 0, err
	}
	if lastExclusive < first {
		lastExclusive = first
	}
	return first, lastExclusive, nil
}
