/*
Package errx provides structured errors with a type, a code, optional details
and an underlying cause.

# Basic Usage

	err := errx.New("item not found", errx.TypeNotFound)

	if errx.IsType(err, errx.TypeNotFound) {
		// Handle not found case
	}

# Error Registry

Packages declare their errors once through a registry with a prefix:

	var registry = errx.NewRegistry("FSX")

	var ErrFileNotFound = registry.Register("FILE_NOT_FOUND", errx.TypeNotFound, "file not found")

	err := registry.NewWithCause(ErrFileNotFound, cause).WithDetail("path", p)

Instances returned by the registry are copies, so details added by one caller
never leak into another.

# Checking Errors

	if errx.IsCode(err, fsx.ErrFileNotFound) {
		// ...
	}

The cause chain is preserved, so errors.Is(err, fs.ErrNotExist) keeps working
on wrapped OS errors.
*/
package errx
