// Package fs abstracts the filesystem operations behind local blob writes.
//
// Production code uses [Default] ([LocalFS]). Tests inject [FaultyFS] to make
// writes, syncs or closes of selected files fail:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// The package has no context.Context parameters; local filesystem calls are
// not interruptible at the syscall level.
package fs
