// umiseed builds and maintains the seed dataset for the UmiLog dive-log app.
package main

import "github.com/umilog/umiseed/cmd"

func main() {
	cmd.Execute()
}
