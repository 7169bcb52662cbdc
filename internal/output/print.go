package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func PrintSuccess(message string) {
	fmt.Println(color.GreenString("✓ ") + message)
}

func PrintWarning(message string) {
	fmt.Println(color.YellowString("! ") + message)
}

func PrintError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("✗ ")+err.Error())
}
