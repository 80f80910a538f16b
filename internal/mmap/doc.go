// Package mmap maps local point files read-only into memory.
//
//	m, err := mmap.Open("points.csv")
//	if err != nil { ... }
//	defer m.Close()
//
//	m.Advise(mmap.AccessSequential)
//	r := m.Reader()
//
// Unix platforms use mmap(2) and madvise(2), Windows uses
// CreateFileMapping/MapViewOfFile. Other platforms read the file into memory.
//
// Bytes and readers obtained from a Mapping must not be used after Close.
package mmap
