// Package config loads the pipeline configuration: where raw data comes from,
// where optimized data goes, and how the optimizer behaves.
//
// Configuration is written in HCL. Any number of files (or directories of
// .hcl files) may be given; later files override the attributes they set.
// Expressions can read the process environment through the env object, and a
// dotenv file is applied to the environment first:
//
//	input {
//	  format    = "xml"
//	  paths     = "${env.MAP_DIR}/rawPathDataS.xml"
//	  locations = "${env.MAP_DIR}/rawLocationDataS.xml"
//	}
//
//	optimize {
//	  mode       = "segment"
//	  recondense = true
//	}
//
// Everything has a default, so an empty configuration reproduces the editor's
// fixed file names and behaviour.
package config
