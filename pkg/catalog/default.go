package catalog

import "time"

// Default returns the built-in catalog.
func Default() Catalog {
	return Catalog{
		Guided: []Site{
			{ID: "minecraftservers-org", Name: "MinecraftServers.org", URL: "https://minecraftservers.org/vote/677258", Rewards: "500 Coins + Vote Key", EstimatedTime: 30 * time.Second, Priority: 1},
			{ID: "minecraft-mp", Name: "Minecraft-MP.com", URL: "https://minecraft-mp.com/server/347108/vote/", Rewards: "300 Coins + Vote Key", EstimatedTime: 45 * time.Second, Priority: 2},
			{ID: "minecraftlist-org", Name: "MinecraftList.org", URL: "https://minecraftlist.org/vote/21507", Rewards: "400 Coins + Vote Key", EstimatedTime: 30 * time.Second, Priority: 3},
			{ID: "top-minecraft-servers", Name: "Top Minecraft Servers", URL: "https://topminecraftservers.org/server/5516", Rewards: "350 Coins + Vote Key", EstimatedTime: 40 * time.Second, Priority: 4},
			{ID: "mc-servers-top", Name: "MC Servers Top", URL: "https://mcservers.top/server/246", Rewards: "250 Coins + Vote Key", EstimatedTime: 25 * time.Second, Priority: 5},
			{ID: "topg-minecraft", Name: "TopG Minecraft", URL: "https://topg.org/minecraft-servers/server-674826#vote", Rewards: "300 Coins + Vote Key", EstimatedTime: 35 * time.Second, Priority: 6},
			{ID: "minecraft-best-servers", Name: "Minecraft Best Servers", URL: "https://minecraftbestservers.com/server-complex.4967/", Rewards: "200 Coins + Vote Key", EstimatedTime: 30 * time.Second, Priority: 7},
			{ID: "minecraft-co", Name: "Minecraft.co.com", URL: "https://minecraft.co.com/server/manacube/vote", Rewards: "250 Coins + Vote Key", EstimatedTime: 40 * time.Second, Priority: 8},
			{ID: "servers-minecraft-net", Name: "Servers-Minecraft.net", URL: "https://servers-minecraft.net/server-complex-gaming-1-21.58/vote", Rewards: "300 Coins + Vote Key", EstimatedTime: 35 * time.Second, Priority: 9},
		},
		Bonus: []BonusSite{
			{Name: "Planet Minecraft", URL: "https://www.planetminecraft.com/server/mint-network/vote/", Rewards: "150 Coins"},
			{Name: "Minecraft Server List", URL: "https://minecraft-server-list.com/server/513843/vote/", Rewards: "100 Coins"},
			{Name: "Minecraft Buzz", URL: "https://minecraft.buzz/vote/4223", Rewards: "125 Coins"},
			{Name: "Best Minecraft Servers", URL: "https://best-minecraft-servers.co/server-hypixel.8612/vote", Rewards: "100 Coins"},
			{Name: "Play Minecraft Servers", URL: "https://play-minecraft-servers.com/minecraft-servers/complex-gaming/?tab=vote", Rewards: "75 Coins"},
			{Name: "MC Server List", URL: "https://mc-server-list.com/server/189-hypixel/vote/", Rewards: "100 Coins"},
		},
	}
}
