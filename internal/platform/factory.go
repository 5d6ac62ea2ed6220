package platform

type options struct {
	family  Family
	program string
	spawn   Spawner
}

// Option configures a FileManager.
type Option func(*options)

// WithFamily selects the launcher table entry instead of the build-time family.
func WithFamily(f Family) Option {
	return func(o *options) {
		o.family = f
	}
}

// WithProgram replaces the launcher program. The reveal flag is kept.
func WithProgram(program string) Option {
	return func(o *options) {
		o.program = program
	}
}

// WithSpawner replaces the process starter.
func WithSpawner(s Spawner) Option {
	return func(o *options) {
		o.spawn = s
	}
}

// New returns the file manager service for the host family.
// Families without a launcher get a service that fails with ErrUnsupported.
func New(opts ...Option) FileManagerService {
	o := options{family: hostFamily, spawn: startDetached}
	for _, opt := range opts {
		opt(&o)
	}

	launcher, err := LauncherFor(o.family)
	if err != nil {
		return &unsupportedFileManager{}
	}
	if o.program != "" {
		launcher.Program = o.program
	}

	return &FileManager{launcher: launcher, spawn: o.spawn}
}

type unsupportedFileManager struct{}

func (s *unsupportedFileManager) View(req ViewRequest) error { return ErrUnsupported }
func (s *unsupportedFileManager) Reveal(path string) error   { return ErrUnsupported }
func (s *unsupportedFileManager) Open(path string) error     { return ErrUnsupported }
