package timeseries

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}
	if len(s.Timestamps) != 5 {
		t.Errorf("Expected 5 timestamps, got %d", len(s.Timestamps))
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestNilSeriesLen(t *testing.T) {
	var s *Series
	if s.Len() != 0 {
		t.Errorf("Expected nil series length 0, got %d", s.Len())
	}
	if s.Data() != nil {
		t.Errorf("Expected nil data for nil series")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"empty", []float64{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}

	if math.Abs(s.Std()-math.Sqrt(expected)) > 1e-10 {
		t.Errorf("Expected std %f, got %f", math.Sqrt(expected), s.Std())
	}
}

func TestMinMaxFirstLast(t *testing.T) {
	s := New([]float64{5, 2, 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}
	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}
	if s.First() != 5 {
		t.Errorf("Expected first 5, got %f", s.First())
	}
	if s.Last() != 3 {
		t.Errorf("Expected last 3, got %f", s.Last())
	}

	empty := New(nil)
	if !math.IsNaN(empty.Last()) || !math.IsNaN(empty.Min()) {
		t.Errorf("Expected NaN for empty series")
	}
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Fatalf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}

	for i, v := range sliced.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}

	if s.Slice(4, 2).Len() != 0 {
		t.Errorf("Expected empty slice for inverted bounds")
	}
}

func TestSplitAndTail(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6})
	train, test := s.Split(2)

	if train.Len() != 4 || test.Len() != 2 {
		t.Fatalf("Expected 4/2 split, got %d/%d", train.Len(), test.Len())
	}
	if test.Values[0] != 5 || test.Values[1] != 6 {
		t.Errorf("Unexpected test values %v", test.Values)
	}

	tail := s.Tail(3)
	if tail.Len() != 3 || tail.Values[0] != 4 {
		t.Errorf("Unexpected tail %v", tail.Values)
	}
}

func TestScale(t *testing.T) {
	s := New([]float64{1, 2, 3})
	scaled := s.Scale(10)

	if scaled.Values[2] != 30 {
		t.Errorf("Expected 30, got %f", scaled.Values[2])
	}
	if s.Values[2] != 3 {
		t.Errorf("Scale modified the original series")
	}
}

func TestCopyAndData(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()
	data := s.Data()

	s.Values[0] = 100

	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
	if data[0] != 1 {
		t.Errorf("Data was modified when original changed")
	}
}
