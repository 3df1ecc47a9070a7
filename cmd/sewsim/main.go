// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"strings"

	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {
	garmentPath := flag.String("garment", "", "garment sewing_*.json pattern file")
	bodyObjPath := flag.String("body", "", "avatar body .obj mesh")
	annotationsPath := flag.String("annotations", "", "avatar body annotations .json")
	paramsPath := flag.String("params", "", "optional parameter override .json")
	piecesFlag := flag.String("pieces", "", "comma-separated subset of piece names to simulate (default: all)")
	outPath := flag.String("out", "frames.json", "output frame file")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nsewsim -- cloth draping simulator\n\n")

	if *garmentPath == "" || *bodyObjPath == "" || *annotationsPath == "" {
		chk.Panic("Please provide -garment, -body, and -annotations\n")
	}

	garment, err := inp.ReadGarment(*garmentPath)
	if err != nil {
		chk.Panic("%v", err)
	}
	defer garment.Clean()

	body, err := inp.ReadBody(*bodyObjPath, *annotationsPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	params := inp.DefaultParams()
	if *paramsPath != "" {
		params, err = inp.ReadParams(*paramsPath)
		if err != nil {
			chk.Panic("%v", err)
		}
	}
	body.ScaleVertices(params.AvatarScaling)

	var pieces []string
	if *piecesFlag != "" {
		pieces = strings.Split(*piecesFlag, ",")
	}

	simulation, err := sim.Build(garment, body, params, pieces)
	if err != nil {
		chk.Panic("%v", err)
	}

	io.Pf("simulating %d pieces for %d steps\n", len(simulation.PieceOrder), params.NrSteps)
	if err := simulation.Run(); err != nil {
		io.PfRed("simulation stopped early: %v\n", err)
	}

	if err := simulation.WriteJSON(*outPath); err != nil {
		chk.Panic("%v", err)
	}
	io.PfGreen("wrote %d frames to %s\n", len(simulation.Frames), *outPath)
}
