package config

const (
	defaultConfigPath          = "~/.config/audiomatch/config.toml"
	projectConfigName          = "audiomatch.toml"
	defaultStateDir            = "~/.local/state/audiomatch"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultNativeSource        = SourceAuto
	defaultNativeDirection     = DirectionOutput
	defaultNativeTimeout       = 10
	defaultPowerShellBinary    = "powershell"
	defaultSystemProfiler      = "system_profiler"
	defaultAplayBinary         = "aplay"
	defaultArecordBinary       = "arecord"
	defaultPactlBinary         = "pactl"
	defaultForeignKind         = KindAudioOutput
	defaultAssignment          = AssignmentGreedy
	defaultMinIDContainment    = 8
	defaultWatchDebounceMS     = 750
	defaultWatchPollIntervalS  = 15
	helperEnvVar               = "AUDIOMATCH_HELPER"
	defaultExcludedForeignID   = "communications"
	maxNativeTimeoutSeconds    = 600
	minWatchPollIntervalSecond = 1
)

// Native source names.
const (
	SourceAuto           = "auto"
	SourceHelper         = "helper"
	SourceSystemProfiler = "system_profiler"
	SourceEndpoints      = "endpoints"
	SourceWMI            = "wmi"
	SourceALSA           = "alsa"
	SourcePulse          = "pulse"
)

// Native enumeration directions.
const (
	DirectionOutput = "output"
	DirectionInput  = "input"
)

// Foreign kind filters. KindAny disables filtering.
const (
	KindAudioOutput = "audiooutput"
	KindAudioInput  = "audioinput"
	KindAny         = "any"
)

// Assignment modes for the matcher.
const (
	AssignmentGreedy  = "greedy"
	AssignmentOptimal = "optimal"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Native: Native{
			Source:               defaultNativeSource,
			Direction:            defaultNativeDirection,
			TimeoutSeconds:       defaultNativeTimeout,
			PowerShellBinary:     defaultPowerShellBinary,
			SystemProfilerBinary: defaultSystemProfiler,
			AplayBinary:          defaultAplayBinary,
			ArecordBinary:        defaultArecordBinary,
			PactlBinary:          defaultPactlBinary,
		},
		Foreign: Foreign{
			Kind:       defaultForeignKind,
			ExcludeIDs: []string{defaultExcludedForeignID},
		},
		Matching: Matching{
			Assignment:       defaultAssignment,
			MinIDContainment: defaultMinIDContainment,
		},
		Watch: Watch{
			DebounceMS:          defaultWatchDebounceMS,
			PollIntervalSeconds: defaultWatchPollIntervalS,
		},
	}
}
