//go:build !unix

package terminal

// unsupportedBackend stands in for platforms without a terminal driver
type unsupportedBackend struct{}

func newNativeBackend() Backend { return unsupportedBackend{} }
func newTcellBackend() Backend  { return unsupportedBackend{} }

func (unsupportedBackend) Init() error                       { return ErrUnsupportedPlatform }
func (unsupportedBackend) Fini() error                       { return nil }
func (unsupportedBackend) Size() (int, int)                  { return 80, 24 }
func (unsupportedBackend) Write(p []byte) (int, error)       { return 0, ErrUnsupportedPlatform }
func (unsupportedBackend) Read() ([]byte, error)             { return nil, ErrUnsupportedPlatform }
func (unsupportedBackend) CancelRead() bool                  { return false }
func (unsupportedBackend) SetResizeHandler(func(w, h int))   {}
