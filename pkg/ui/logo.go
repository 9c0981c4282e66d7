package ui

import "github.com/pterm/pterm"

const LogoASCII = `
        *
       / \
      / | \
     /  |  \
    /___|___\
      | | |
      | | |

   /===========\
  /             \
 /   astroctl    \
 \               /
  \             /
   \===========/
`

func PrintBanner() {
	pterm.DefaultCenter.Println(pterm.NewRGB(64, 156, 255).Sprint(LogoASCII))
}
