// Package hal holds the error sentinels and logging hook shared by every
// component in core: the set of unrecoverable GPU states a caller needs to
// check with errors.Is (device lost, surface lost/outdated, out of memory),
// and a slog-backed logger that defaults to silent.
//
// # Error Handling
//
//   - ErrDeviceOutOfMemory - GPU memory exhausted
//   - ErrDeviceLost - GPU disconnected or driver reset
//   - ErrSurfaceLost - Window destroyed or surface invalidated
//   - ErrSurfaceOutdated - Window resized, need reconfiguration
//   - ErrZeroArea - surface has zero width or height, skip the frame
//   - ErrDriverBug - driver returned a result that violates the Vulkan spec
//
// Validation errors (invalid descriptors, incorrect usage) are the caller's
// responsibility and are not checked here.
//
// # Logging
//
// hal.SetLogger/hal.Logger hold a shared, lazily configured *slog.Logger
// that sits outside core, so importing it creates no cycle. No package in
// this module calls hal.Logger; it is a hook for embedding applications.
package hal
