package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"wmrc/update"
	"wmrc/validate"
)

type CmdArgs struct {
	Update   *update.Config   `arg:"subcommand" help:"Pull the annual reports and reload the feature layers"`
	Validate *validate.Config `arg:"subcommand" help:"Write year-over-year comparison CSVs without touching the layers"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// The following env variables are needed:
	//   - update:   "SF_CLIENT_ID", "SF_CLIENT_SECRET", "AGOL_USER", "AGOL_PASSWORD",
	//               "SHEET_ID", "COUNTY_DB_CONN", "SENDGRID_API_KEY"
	//   - validate: "SF_CLIENT_ID", "SF_CLIENT_SECRET"
	if err := godotenv.Load(); err != nil {
		fmt.Println(err)
		return
	}

	args := CmdArgs{}
	parser := arg.MustParse(&args)

	var err error
	switch {
	case args.Update != nil:
		err = args.Update.Execute()
	case args.Validate != nil:
		err = args.Validate.Execute()
	default:
		fmt.Println("Error: passing a subcommand is required.")
		fmt.Println()
		parser.WriteHelp(os.Stdout)
		return
	}

	if err != nil {
		log.Fatal(err)
	}
}
