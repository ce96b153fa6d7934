package cmd

var flgs = &Flags{}

type Flags struct {
	Source    string
	Operation string
	Output    string
	Config    string
	Verbose   bool
}

var flagMap = FlagMap{
	Source: FlagSet[string]{
		Name:  "source",
		Usage: "CSV file of shipment records to process.",
		Value: "",
	},
	Operation: FlagSet[string]{
		Name:  "type",
		Usage: "Operation applied to every record: create or update.",
		Value: "",
	},
	Output: FlagSet[string]{
		Name:  "output",
		Usage: "Directory that receives the output.csv report.",
		Value: "",
	},
	Config: FlagSet[string]{
		Name:  "config",
		Usage: "Path to a config.json or encrypted .bin configuration file.",
		Value: "",
	},
	Verbose: FlagSet[bool]{
		Name:  "verbose",
		Usage: "Enable human-readable debug logging.",
		Value: false,
	},
}

type FlagSet[T any] struct {
	Name  string
	Usage string
	Value T
}

type FlagMap struct {
	Source    FlagSet[string]
	Operation FlagSet[string]
	Output    FlagSet[string]
	Config    FlagSet[string]
	Verbose   FlagSet[bool]
}
