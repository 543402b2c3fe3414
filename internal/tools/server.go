package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/talgya/medieval-life/internal/session"
)

// NewServer creates an MCP server with every game tool registered.
func NewServer(sess *session.Session, version string) *mcp.Server {
	gt := &GameTools{Session: sess}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "medieval-life",
		Version: version,
	}, nil)

	// Life and time
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "new_game",
		Description: "Create a character and start a new life in a freshly generated realm",
	}, gt.NewGame)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "status",
		Description: "Show the character, the date, the location and the recent event log",
	}, gt.Status)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "end_season",
		Description: "End the season: age, earn income and see what the season brought",
	}, gt.EndSeason)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_actions",
		Description: "List the actions available to the character's occupation",
	}, gt.ListActions)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "perform_action",
		Description: "Perform an occupation action by name or number",
	}, gt.PerformAction)

	// Travel
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "destinations",
		Description: "List the settlements reachable from here and how many days each journey takes",
	}, gt.Destinations)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "travel",
		Description: "Travel to a destination from the last destinations listing",
	}, gt.Travel)

	// Market and inventory
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "market",
		Description: "Visit the local market and see what is for sale this season",
	}, gt.Market)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "buy",
		Description: "Buy an item from the open market",
	}, gt.Buy)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "sell",
		Description: "Sell an inventory item, by number or name, for seven tenths of its value",
	}, gt.Sell)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "use_item",
		Description: "Eat food, drink a potion or read a book from the inventory",
	}, gt.UseItem)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "equip",
		Description: "Equip a weapon or armor from the inventory",
	}, gt.Equip)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "unequip",
		Description: "Return the equipped weapon or armor to the inventory",
	}, gt.Unequip)

	// Family
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "find_spouse",
		Description: "Look for someone to marry in the current settlement",
	}, gt.FindSpouse)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "marry",
		Description: "Marry a candidate from the last find_spouse search",
	}, gt.Marry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "spouse_talk",
		Description: "Talk with the spouse about a topic, or list the topics",
	}, gt.SpouseTalk)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "spouse_gift",
		Description: "Give an inventory item to the spouse",
	}, gt.SpouseGift)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "spouse_outing",
		Description: "Take the spouse on an outing: walk, market, festival, tavern or tournament",
	}, gt.SpouseOuting)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "try_for_child",
		Description: "Try for a child with the spouse",
	}, gt.TryForChild)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "child_interact",
		Description: "Talk with, play with or teach a child",
	}, gt.ChildInteract)

	// Townsfolk
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "npcs",
		Description: "List the residents of the current settlement and your standing with each",
	}, gt.NPCs)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "talk_npc",
		Description: "Greet a resident, or say one of their conversation options",
	}, gt.TalkNPC)

	// Saves
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "save_game",
		Description: "Save the game to a new save file",
	}, gt.SaveGame)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "load_game",
		Description: "Load a saved game, or the latest save when no path is given, replacing the game in progress",
	}, gt.LoadGame)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_saves",
		Description: "List saved games, newest first",
	}, gt.ListSaves)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "save_history",
		Description: "Show the event log a save captured, oldest first",
	}, gt.SaveHistory)

	return srv
}
