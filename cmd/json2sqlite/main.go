// Command json2sqlite converts JSON documents into SQLite databases.
//
//	json2sqlite convert people.json
//	json2sqlite convert s3://incoming/orders.json --output-dir ./out
//	json2sqlite preview people.sqlite --limit 5
//	json2sqlite serve --addr :8080
package main

import (
	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Convert a JSON document into a SQLite database"`
	Preview PreviewCmd `cmd:"" help:"Show the first rows of the first table in a database"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP API"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("json2sqlite"),
		kong.Description("Convert JSON documents into SQLite databases"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
