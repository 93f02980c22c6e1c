package main

import "github.com/DedPeredoz/rustyloot-scraper/internal/cmd"

func main() {
	cmd.Execute()
}
