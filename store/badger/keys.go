package badger

import "fmt"

// Key prefixes for the run keyspace.
const (
	runInfoPrefix   = "runinf"
	runSeedPrefix   = "runsee"
	runPoolPrefix   = "runpoo"
	runGraphPrefix  = "rungra"
	runReportPrefix = "runrep"
	runConfigPrefix = "runcfg"
)

func makeRunInfoKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runInfoPrefix, id))
}

func makeRunSeedKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runSeedPrefix, id))
}

func makeRunPoolKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runPoolPrefix, id))
}

func makeRunGraphKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runGraphPrefix, id))
}

func makeRunReportKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runReportPrefix, id))
}

func makeRunConfigKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runConfigPrefix, id))
}
