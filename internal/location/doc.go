// Package location models the named points of interest that the map editor
// attaches to traced paths: buildings, entrances, bridge ends and so on.
//
// A Location is supplied by the loading layer and is only referenced, never
// owned, by the path graph. Location IDs come from an explicit IDAllocator so
// that every optimization run can reset or seed the counter and stay
// deterministic; there is no package-level ID state.
package location
