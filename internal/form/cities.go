package form

// CityIDs lists the destinations offered on the multi-select keyboard, in
// display order. Labels per language live in the locales catalogs under
// "city_<id>" keys.
var CityIDs = []string{
	"mecca",
	"medina",
	"dubai",
	"istanbul",
	"sharm",
	"cairo",
	"doha",
	"jeddah",
}

// IsKnownCity reports whether id is one of the offered destinations.
func IsKnownCity(id string) bool {
	for _, c := range CityIDs {
		if c == id {
			return true
		}
	}
	return false
}

// ToggleCity flips the selection of a known city and reports whether it is
// now selected.
func (a *Answers) ToggleCity(id string) bool {
	for i, c := range a.Cities {
		if c == id {
			a.Cities = append(a.Cities[:i], a.Cities[i+1:]...)
			return false
		}
	}
	a.Cities = append(a.Cities, id)
	return true
}

// AddOtherCity records a free-text destination, skipping duplicates.
func (a *Answers) AddOtherCity(name string) {
	for _, c := range a.OtherCities {
		if c == name {
			return
		}
	}
	a.OtherCities = append(a.OtherCities, name)
}

// RemoveOtherCity drops a free-text destination. Pressing its button on the
// multi-select keyboard deselects it.
func (a *Answers) RemoveOtherCity(name string) {
	for i, c := range a.OtherCities {
		if c == name {
			a.OtherCities = append(a.OtherCities[:i], a.OtherCities[i+1:]...)
			return
		}
	}
}

// HasCities reports whether at least one destination is selected.
func (a *Answers) HasCities() bool {
	return len(a.Cities) > 0 || len(a.OtherCities) > 0
}
