// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package feedstock holds the regional feedstock sites shown on the
// logistics map. The list is static until live GIS data is integrated.
package feedstock

import "slices"

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Site is one marker on the map. Color is RGBA.
type Site struct {
	Name  string `json:"name"`
	Point `json:",inline"`
	Size  int    `json:"size"`
	Color [4]int `json:"color"`
}

// Map is the map viewport together with its markers.
type Map struct {
	Center Point  `json:"center"`
	Zoom   int    `json:"zoom"`
	Sites  []Site `json:"sites"`
}

var center = Point{Lat: 20.5937, Lon: 78.9629}

var sites = []Site{
	{Name: "Mumbai", Point: Point{Lat: 19.0760, Lon: 72.8777}, Size: 30, Color: [4]int{255, 0, 0, 160}},
	{Name: "Delhi", Point: Point{Lat: 28.6139, Lon: 77.2090}, Size: 30, Color: [4]int{0, 255, 0, 160}},
	{Name: "Chennai", Point: Point{Lat: 13.0827, Lon: 80.2707}, Size: 30, Color: [4]int{0, 0, 255, 160}},
	{Name: "Kolkata", Point: Point{Lat: 22.5726, Lon: 88.3639}, Size: 30, Color: [4]int{255, 255, 0, 160}},
	// The map center is drawn larger than the sites around it.
	{Name: "India", Point: center, Size: 100, Color: [4]int{0, 0, 0, 100}},
}

// Sites returns a copy of the static site list.
func Sites() []Site {
	return slices.Clone(sites)
}

// India returns the map of India with every site.
func India() Map {
	return Map{
		Center: center,
		Zoom:   4,
		Sites:  Sites(),
	}
}
