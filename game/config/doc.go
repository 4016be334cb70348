// Package config loads Battleship rule sets from a directory of JSON files.
//
// A rule set names the two players, may pre-select the fleet size, and
// overrides the per-phase instructions:
//
//	{
//	  "name": "Quick Skirmish",
//	  "description": "One ship each",
//	  "player_names": {"one": "North", "two": "South"},
//	  "default_fleet_count": 1,
//	  "instructions": {"player_turn": "Fire!"}
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	quick, err := manager.LoadConfig("quick")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default is classic.json when present, then the first valid file, and
// finally the engine's built-in rule set.
package config
