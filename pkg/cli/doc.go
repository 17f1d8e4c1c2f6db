// Package cli implements the command-line interface for the feedform tool.
//
// # Overview
//
// The feedform CLI generates candidate feed mixtures from a selection of
// ingredients and reports which of them meet the nutrient requirement of an
// animal class. It also lists the animal types, classes, and ingredient
// options the built-in profiles support, and can run the API server.
//
// # Commands
//
// animals - List supported animal types:
//
//	feedform animals [--format yaml|json|table]
//
// classes - List the requirement classes of an animal type:
//
//	feedform classes --animal catfish
//
// ingredients - List ingredient options by category:
//
//	feedform ingredients --animal pig --format table
//
// formulate - Generate and filter mixtures:
//
//	feedform formulate --animal catfish --class Grower \
//	  --energy-sources Maize,Sorghum --energy-replacers "Wheat bran","Rice bran" \
//	  --medium-protein-sources "Soybean meal","Groundnut cake" \
//	  --protein-replacers "Cottonseed cake","Sesame cake"
//
// A request document may be given instead of, or in addition to, the
// category flags. Flags win over values in the document:
//
//	feedform formulate -f request.yaml --tolerance 0.02 --rank
//	cat request.json | feedform formulate -f -
//
// serve - Run the API server:
//
//	PORT=8080 feedform serve
//
// # Global Flags
//
//	--config, -c   Config file (default: $HOME/.feedform.yaml or ./.feedform.yaml)
//	--log-level    Log level: debug, info, warn, error (default: warn)
//	--debug        Shorthand for --log-level=debug
//
// # Output Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Environment Variables
//
//	LOG_LEVEL                 Logging verbosity
//	FEEDFORM_TOLERANCE        Default tolerance
//	FEEDFORM_STEP             Grid step within a bucket
//	FEEDFORM_MAX_MIXTURES     Generation cap
//	FEEDFORM_DATA_DIR         Profile override directory
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Interrupted
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/feedform/feedform/pkg/cli.version=1.0.0'"
package cli
