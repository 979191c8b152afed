// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Countries is the closed list of countries accepted on a funding
// application. "Other" is the catch-all for everywhere else.
var Countries = []string{
	"Argentina", "Australia", "Austria", "Belgium", "Brazil", "Canada",
	"Chile", "China", "Colombia", "Czech Republic", "Denmark", "Egypt",
	"Finland", "France", "Germany", "Greece", "India", "Indonesia",
	"Ireland", "Israel", "Italy", "Japan", "Kenya", "Malaysia", "Mexico",
	"Netherlands", "New Zealand", "Norway", "Peru", "Philippines", "Poland",
	"Portugal", "Russia", "Saudi Arabia", "Singapore", "South Africa",
	"South Korea", "Spain", "Sweden", "Switzerland", "Thailand", "Turkey",
	"UAE", "UK", "USA", "Ukraine", "Venezuela", "Vietnam", "Other",
}

var countrySet = func() map[string]bool {
	set := make(map[string]bool, len(Countries))
	for _, c := range Countries {
		set[c] = true
	}
	return set
}()

// ValidCountry reports whether name is in the closed country list.
func ValidCountry(name string) bool {
	return countrySet[name]
}
