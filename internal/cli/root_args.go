package cli

type RootArgs struct {
	logLevel  *string
	logFormat *string
	manifest  *string
	jobs      *int
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:  new(string),
		logFormat: new(string),
		manifest:  new(string),
		jobs:      new(int),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetManifest() string {
	return *a.manifest
}

func (a *RootArgs) GetJobs() int {
	return *a.jobs
}
