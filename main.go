package main

import "github.com/epeers/twrank/cmd"

// @title Taiwan Turnover Ranking API
// @version 1.0
// @description Top securities by turnover on TWSE and TPEx with multi-horizon close-price drift.
// @BasePath /
func main() {
	cmd.Execute()
}
