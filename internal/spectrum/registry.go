package spectrum

import "fmt"

// Registry owns the ordered list of spectra and the selected spectrum.
//
// Every spectrum has an aligned dataset in the Store; the Registry keeps
// len(spectra) == store.Len() across all of its operations.
// Not safe for concurrent use.
type Registry struct {
	spectra  []Spectrum
	selected int
	store    *Store
}

// NewRegistry creates a registry holding the default spectrum, selected,
// with its empty dataset attached to store.
func NewRegistry(store *Store) *Registry {
	r := &Registry{store: store}
	r.push(newSpectrum(DefaultSpectrumTitle, White, true))
	r.selected = 0
	return r
}

func (r *Registry) push(sp Spectrum) {
	r.spectra = append(r.spectra, sp)
	r.store.attach(sp)
}

// Len returns the number of spectra.
func (r *Registry) Len() int {
	return len(r.spectra)
}

// AddSpectrum appends an untitled black spectrum, selects it and returns
// its index.
func (r *Registry) AddSpectrum() int {
	r.push(newSpectrum("", Black, false))
	r.selected = len(r.spectra) - 1
	return r.selected
}

// RemoveSpectrum removes a spectrum together with its dataset.
//
// The last remaining spectrum cannot be removed. The selection follows the
// spectrum it pointed at; if that spectrum is the one removed, the
// selection moves to the spectrum now at the same position, or to the last
// one.
func (r *Registry) RemoveSpectrum(index int) error {
	if err := r.CanRemove(index); err != nil {
		return err
	}

	r.spectra = append(r.spectra[:index], r.spectra[index+1:]...)
	r.store.detach(index)

	switch {
	case index < r.selected:
		r.selected--
	case r.selected >= len(r.spectra):
		r.selected = len(r.spectra) - 1
	}
	return nil
}

// CanRemove reports why RemoveSpectrum would refuse index, or nil.
func (r *Registry) CanRemove(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	if len(r.spectra) == 1 {
		return ErrLastSpectrum
	}
	return nil
}

// SelectSpectrum sets the selected spectrum.
func (r *Registry) SelectSpectrum(index int) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.selected = index
	return nil
}

// Selected returns the selected spectrum index.
func (r *Registry) Selected() (int, error) {
	if r.selected < 0 || r.selected >= len(r.spectra) {
		return r.selected, fmt.Errorf("%w: %d (have %d)",
			ErrStaleSelection, r.selected, len(r.spectra))
	}
	return r.selected, nil
}

// UpdateColor recolors a spectrum and its dataset stroke and fill.
func (r *Registry) UpdateColor(index int, c Color) error {
	if err := r.check(index); err != nil {
		return err
	}
	c, err := ParseColor(string(c))
	if err != nil {
		return err
	}
	r.spectra[index].Color = c
	r.store.setColor(index, c)
	return nil
}

// UpdateTitle renames a spectrum and its dataset label.
func (r *Registry) UpdateTitle(index int, title string) error {
	if err := r.check(index); err != nil {
		return err
	}
	r.spectra[index].Title = title
	r.store.setLabel(index, title)
	return nil
}

// Spectrum returns the spectrum at index.
func (r *Registry) Spectrum(index int) (Spectrum, error) {
	if err := r.check(index); err != nil {
		return Spectrum{}, err
	}
	return r.spectra[index], nil
}

// Spectra returns a copy of all spectra in order.
func (r *Registry) Spectra() []Spectrum {
	return append([]Spectrum(nil), r.spectra...)
}

// IndexOf returns the current index of the spectrum with the given ID,
// or -1.
func (r *Registry) IndexOf(sp Spectrum) int {
	for i, s := range r.spectra {
		if s.ID == sp.ID {
			return i
		}
	}
	return -1
}

func (r *Registry) check(index int) error {
	if index < 0 || index >= len(r.spectra) {
		return fmt.Errorf("%w: spectrum %d (have %d)",
			ErrIndexOutOfRange, index, len(r.spectra))
	}
	return nil
}
