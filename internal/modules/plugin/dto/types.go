package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CommandInfo struct {
	ID              string
	Title           string
	Description     string
	Kind            string
	InputSchemaJSON string
	TimeoutMS       int
}

// RunInput selects a plugin command and the remote file whose
// engagement series it receives. Dir overrides the working directory
// export commands write into.
type RunInput struct {
	PluginName string
	CommandID  string
	FileID     int64
	Dir        string
	Env        map[string]string
}

type RunOutput struct {
	PluginName string
	CommandID  string
	Kind       string
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
