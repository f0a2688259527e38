// Package libname implements the shared-library filename conventions.
//
// Library files carry a platform suffix (.so, .dylib or .dll) and, by convention, a
// "lib" prefix. The short name of a library is its filename with both removed and
// identifies the library inside a loader.
package libname
