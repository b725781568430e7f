package main

import (
	"os"

	"github.com/mongodb/deadpool/management"
	"github.com/mongodb/grip"
)

func main() {
	grip.EmergencyFatal(management.NewApp().Run(os.Args))
}
