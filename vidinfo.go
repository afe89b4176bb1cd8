// Package vidinfo extracts playable-media metadata from third-party sites
// and normalizes it into a uniform MediaInfo record describing a resource
// and its available formats.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, m3u8/, sqlite/) or, for
// dependency-free logic, after their role (traverse/, coerce/, extract/).
package vidinfo
