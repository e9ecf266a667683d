package quest

var catalog = []Definition{
	{
		ID: "cull_slimes", Name: "Cull the Slimes",
		Description: "Defeat 5 Forest Slimes threatening the outskirts.",
		Target:      "forest_slime", Count: 5,
		RewardGold: 60, RewardXP: 80, RewardItem: "w_dagger",
		Zone: "forest", Giver: "questmaster_rho", Receiver: "questmaster_rho",
	},
	{
		ID: "grove_attunement", Name: "Grove Attunement",
		Description: "Defeat 4 Thorn Guardians to attune to the Elven Grove.",
		Target:      "thorn_guardian", Count: 4,
		RewardGold: 180, RewardXP: 200, RewardItem: "grove_wand",
		Zone: "grove", Giver: "questmaster_rho", Receiver: "questmaster_rho",
	},
	{
		ID: "aid_the_elves", Name: "Aid the Elves",
		Description: "Defeat 6 Corrupted Sprites in the Elf Grove to help cleanse the forest.",
		Target:      "corrupted_sprite", Count: 6,
		RewardGold: 120, RewardXP: 150, RewardItem: "a_leather",
		Zone: "grove", Giver: "questmaster_rho", Receiver: "questmaster_rho",
	},
	{
		ID: "cave_menace", Name: "Cave Menace",
		Description: "Defeat the Cave Wyrm lurking in the depths.",
		Target:      "boss_cave_wyrm", Count: 1,
		RewardGold: 250, RewardXP: 300, RewardItem: "wyrm_scale_armor",
		Zone: "cave", Giver: "guard_lyra", Receiver: "blacksmith_garr",
	},
	{
		ID: "ruins_cleanse", Name: "Ruins Cleanse",
		Description: "Defeat 5 Ruins Specters to begin cleansing the Ancient Ruins.",
		Target:      "ruins_specter", Count: 5,
		RewardGold: 300, RewardXP: 380, RewardItem: "relic_mystic_robes",
		Zone: "ruins", Giver: "historian_ane", Receiver: "questmaster_rho",
	},
	{
		ID: "depths_challenge", Name: "Depths Challenge",
		Description: "Defeat 3 Wyrmspawn to prove readiness for the Wyrm's Depths.",
		Target:      "depths_wyrmspawn", Count: 3,
		RewardGold: 420, RewardXP: 520, RewardItem: "wyrmfire_lance",
		Zone: "depths", Giver: "guard_lyra", Receiver: "alchemist_miri",
	},
	{
		ID: "elder_wyrm", Name: "The Elder Deep",
		Description: "Confront and defeat the Wyrm of Elder Deep beneath the Depths.",
		Target:      "boss_elder_wyrm", Count: 1,
		RewardGold: 1000, RewardXP: 1500, RewardItem: "ember_charm",
		Zone: "depths",
	},
}

// Lookup returns the quest definition for id.
func Lookup(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
