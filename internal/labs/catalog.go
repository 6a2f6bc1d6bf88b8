package labs

// CatalogEntry is one exercise in the fixed lab catalog.
type CatalogEntry struct {
	ID   string
	Name string
}

// Catalog is the static list of lab exercises the platform offers. Lab IDs
// in start_lab requests are expected to come from this list, but the
// registry does not enforce that.
var Catalog = []CatalogEntry{
	{ID: "photoeletriceffect1", Name: "Photoelectric Effect 1"},
	{ID: "photoeletriceffect2", Name: "Photoelectric Effect 2"},
	{ID: "atomicsepctroscopy1", Name: "Atomic Spectroscopy 1"},
	{ID: "atomicsepctroscopy2", Name: "Atomic Spectroscopy 2"},
	{ID: "frankhertz1", Name: "Frank-Hertz 1"},
	{ID: "frankhertz2", Name: "Frank-Hertz 2"},
	{ID: "diffractionandinterference1", Name: "Diffraction and Interference 1"},
	{ID: "diffractionandinterference2", Name: "Diffraction and Interference 2"},
	{ID: "gammaradiationabsorption1", Name: "Gamma Radiation Absorption 1"},
	{ID: "gammaradiationabsorption2", Name: "Gamma Radiation Absorption 2"},
}
