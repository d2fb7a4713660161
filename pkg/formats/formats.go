// Package formats reads and writes heightmap files for the globe renderer.
package formats

// Supported inputs:
//   - GAT (ground altitude table), see gat.go
//   - GND (ground mesh), terrain heights only, see gnd.go
//   - HMAP (raw int32 grid), see hmap.go
//   - grayscale PNG and TIFF images, see image.go
//   - any of the above stored in a GRF archive, see load.go
