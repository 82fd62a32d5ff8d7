package cli

// Options holds every command-line flag. The database name is the only
// required one and is always taken from the command line; connection
// details beyond it come from the config file, REPORTS_* variables or the
// driver's own environment.
type Options struct {
	DBName      string `long:"db_name" description:"Name of the database to query (also -db)" value-name:"NAME" required:"true"`
	OutputPath  string `short:"o" long:"output_path" description:"Report file to append to (default: <program>.txt)" value-name:"PATH"`
	Config      string `short:"c" long:"config" description:"Path to a YAML config file" value-name:"PATH"`
	Verbose     bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	Stdout      bool   `long:"stdout" description:"Also print each report block to stdout"`
	PrintConfig bool   `long:"print-config" description:"Print the effective configuration and exit"`
	// Version is handled before parsing; the field only lists it in --help.
	Version     bool   `long:"version" description:"Show version and exit"`
}
