// Package config loads the slideproj TOML configuration file.
//
// # Configuration Discovery
//
// Load reads the path it is given, or ~/.config/slideproj/config.toml. A
// missing file is not an error: Default is returned instead. Fields left out
// of the file, or left empty, keep their default values.
//
// # TOML Format
//
//	dirs = ["~/Pictures/2024", "/mnt/photos"]
//	include = ["*.jpg", "*.png"]
//	sort_by = ["in_group", "timestamp"]
//	locale = "sv"
//	loop = true
//	autoplay = true
//	step_delay = "6s"
//	transition = "1s"
//	max_pixel_count = 100000000
//	cache_exponent = 3
//	prefetch_radius = 3
//	resume = true
//	fullscreen = false
//	log_level = "info"
//	log_file = "~/.local/state/slideproj/slideproj.log"
//
// Durations use Go syntax ("1.5s", "250ms"). Tilde expansion is performed for
// dirs and log_file.
//
// # Directories
//
// PicturesDir is the default input directory. StateDir holds files that
// survive restarts, such as the resume position.
package config
