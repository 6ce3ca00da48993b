package weather

import (
	"strconv"
	"strings"
)

// DefaultLocation is used for empty or unknown location names.
const DefaultLocation = "Sorriso, MT"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Locations of the farms known to the dashboard.
var cityCoordinates = map[string]Coordinates{
	"Sorriso, MT":                {Lat: -12.5463, Lon: -55.7114},
	"Rio Verde, GO":              {Lat: -17.7928, Lon: -50.9194},
	"Cascavel, PR":               {Lat: -24.9578, Lon: -53.4595},
	"Luís Eduardo Magalhães, BA": {Lat: -12.0966, Lon: -45.7871},
	"Patrocínio, MG":             {Lat: -18.9438, Lon: -46.9936},
	"Dourados, MS":               {Lat: -22.2231, Lon: -54.8118},
	"Ribeirão Preto, SP":         {Lat: -21.1783, Lon: -47.8067},
	"Pedro Afonso, TO":           {Lat: -8.9697, Lon: -48.1753},
	"Passo Fundo, RS":            {Lat: -28.2576, Lon: -52.4091},
}

var cityIndex = func() map[string]string {
	idx := make(map[string]string, len(cityCoordinates))
	for name := range cityCoordinates {
		idx[strings.ToLower(name)] = name
	}
	return idx
}()

// Resolve returns the canonical name and coordinates of a known location.
// Unknown or empty names fall back to DefaultLocation; this is never an error.
func Resolve(location string) (string, Coordinates) {
	if name, ok := cityIndex[strings.ToLower(strings.TrimSpace(location))]; ok {
		return name, cityCoordinates[name]
	}
	return DefaultLocation, cityCoordinates[DefaultLocation]
}

// ParseCoordinates parses an explicit lat/lon pair. ok is false when either
// value is missing, unparsable or out of range.
func ParseCoordinates(lat, lon string) (Coordinates, bool) {
	if lat == "" || lon == "" {
		return Coordinates{}, false
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || la < -90 || la > 90 {
		return Coordinates{}, false
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil || lo < -180 || lo > 180 {
		return Coordinates{}, false
	}
	return Coordinates{Lat: la, Lon: lo}, true
}
