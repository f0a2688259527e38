package loader

import "errors"

var (
	// ErrLibraryOpen is returned when the operating system fails to load a library.
	ErrLibraryOpen = errors.New("failed to open library")
	// ErrMalformedLibrary is returned when a library implements neither plugin protocol.
	ErrMalformedLibrary = errors.New("malformed component library")
	// ErrUnsafeReload is returned when a reload is refused because live instances use the library.
	ErrUnsafeReload = errors.New("refusing to reload library with live instances")
	// ErrUnsafeUnload is returned when an unload is refused because live instances use the library.
	ErrUnsafeUnload = errors.New("library backs live instances")
	// ErrLibraryNotFound is returned when no library is tracked under a short name.
	ErrLibraryNotFound = errors.New("library not loaded")
	// ErrPackageNotFound is returned when no package candidate could be loaded.
	ErrPackageNotFound = errors.New("package not found")
	// ErrUnknownType is returned when instantiating an unregistered component type.
	ErrUnknownType = errors.New("unknown component type")
	// ErrConstructor is returned when a component factory fails, panics or returns nothing.
	ErrConstructor = errors.New("component constructor failed")
	// ErrDuplicateInstance is returned when an instance name is already in use.
	ErrDuplicateInstance = errors.New("instance name already in use")
	// ErrForeignInstance is returned when destroying an instance this loader did not create.
	ErrForeignInstance = errors.New("instance not owned by this loader")
)
