/*
Copyright © 2025 Skillsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"context"
	"log"
	"os"

	"github.com/wyattowalsh/skillsight/pkg/cli"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("error: %v", err)
	}
}
