// Package report handles writing and reading wsrun run reports. A report
// records how each project settled during a walk so CI systems can archive
// or diff it.
package report
