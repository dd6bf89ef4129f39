// Package project loads package.json descriptors into immutable Project values.
// A Project exposes its name, its four dependency maps, and its scripts; it is
// never mutated after loading, so graphs and schedulers may snapshot it freely.
package project
