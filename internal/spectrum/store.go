package spectrum

import "fmt"

// Store holds one ordered point sequence per spectrum.
//
// Datasets are index-aligned with the Registry; only the Registry adds or
// removes whole datasets. Not safe for concurrent use.
type Store struct {
	datasets []Dataset
}

func NewStore() *Store {
	return &Store{}
}

// Len returns the number of datasets.
func (s *Store) Len() int {
	return len(s.datasets)
}

// PointCount returns the number of points in a dataset, or 0 if the index
// is invalid.
func (s *Store) PointCount(spectrumIndex int) int {
	if !s.validSpectrum(spectrumIndex) {
		return 0
	}
	return len(s.datasets[spectrumIndex].Points)
}

// AppendPoint adds a point to the end of a dataset. Points are not sorted.
func (s *Store) AppendPoint(spectrumIndex int, p Point) error {
	if !s.validSpectrum(spectrumIndex) {
		return s.spectrumErr(spectrumIndex)
	}
	ds := &s.datasets[spectrumIndex]
	ds.Points = append(ds.Points, NewPoint(p.X, p.Y))
	return nil
}

// RemovePointAt removes a point by position.
//
// Either index being invalid is reported as ErrIndexOutOfRange; the store
// is left untouched.
func (s *Store) RemovePointAt(spectrumIndex, pointIndex int) error {
	if err := s.checkPoint(spectrumIndex, pointIndex); err != nil {
		return err
	}
	ds := &s.datasets[spectrumIndex]
	ds.Points = append(ds.Points[:pointIndex], ds.Points[pointIndex+1:]...)
	return nil
}

// PointAt returns a copy of the addressed point.
func (s *Store) PointAt(spectrumIndex, pointIndex int) (Point, error) {
	if err := s.checkPoint(spectrumIndex, pointIndex); err != nil {
		return Point{}, err
	}
	return s.datasets[spectrumIndex].Points[pointIndex], nil
}

// SetPointX moves a point along the time axis. The intensity is untouched.
func (s *Store) SetPointX(spectrumIndex, pointIndex int, t ClockTime) error {
	if err := s.checkPoint(spectrumIndex, pointIndex); err != nil {
		return err
	}
	p := &s.datasets[spectrumIndex].Points[pointIndex]
	p.X = t.Normalize()
	return nil
}

// Datasets returns a deep copy of all datasets.
func (s *Store) Datasets() []Dataset {
	out := make([]Dataset, len(s.datasets))
	for i, ds := range s.datasets {
		out[i] = ds.clone()
	}
	return out
}

// Dataset returns a deep copy of one dataset.
func (s *Store) Dataset(spectrumIndex int) (Dataset, error) {
	if !s.validSpectrum(spectrumIndex) {
		return Dataset{}, s.spectrumErr(spectrumIndex)
	}
	return s.datasets[spectrumIndex].clone(), nil
}

// attach appends an empty dataset for a newly created spectrum.
func (s *Store) attach(sp Spectrum) {
	s.datasets = append(s.datasets, newDataset(sp))
}

// detach removes the dataset aligned with a removed spectrum.
func (s *Store) detach(spectrumIndex int) {
	s.datasets = append(s.datasets[:spectrumIndex], s.datasets[spectrumIndex+1:]...)
}

// setColor propagates a spectrum color to the dataset stroke and fill.
func (s *Store) setColor(spectrumIndex int, c Color) {
	s.datasets[spectrumIndex].Stroke = c
	s.datasets[spectrumIndex].Fill = c
}

func (s *Store) setLabel(spectrumIndex int, label string) {
	s.datasets[spectrumIndex].Label = label
}

func (s *Store) validSpectrum(i int) bool {
	return i >= 0 && i < len(s.datasets)
}

func (s *Store) spectrumErr(i int) error {
	return fmt.Errorf("%w: dataset %d (have %d)", ErrIndexOutOfRange, i, len(s.datasets))
}

func (s *Store) checkPoint(spectrumIndex, pointIndex int) error {
	if !s.validSpectrum(spectrumIndex) {
		return s.spectrumErr(spectrumIndex)
	}
	n := len(s.datasets[spectrumIndex].Points)
	if pointIndex < 0 || pointIndex >= n {
		return fmt.Errorf("%w: point %d of dataset %d (have %d)",
			ErrIndexOutOfRange, pointIndex, spectrumIndex, n)
	}
	return nil
}
