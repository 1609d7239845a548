// Command shpinfo inspects shapefiles, projection files and WKT/WKB geometry.
//
// Usage:
//
//	shpinfo info coast.shp
//	shpinfo wkt coast.shp --record 3
//	shpinfo query coast.shp -- -71.5 42.0 -71.0 42.5
//	shpinfo prj coast.prj
//	shpinfo import --wkb 0101000000000000000000f03f0000000000000040
//
// Settings may come from flags, a config file (--config), or environment
// variables prefixed SHPINFO_, e.g. SHPINFO_LOG_LEVEL=debug. A .env file in
// the working directory is loaded first.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
