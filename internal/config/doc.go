// Package config defines the format-agnostic mission model and the Loader
// interface that fills it.
//
// A loaded Model holds any number of missions and, optionally, a parts
// catalog. Concrete loaders, such as the HCL one, live in separate packages;
// the rest of the application only sees the types declared here.
package config
