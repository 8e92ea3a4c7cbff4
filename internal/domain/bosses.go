package domain

// DefaultBosses are the bosses tracked out of the box.
// Ordinals are fixed: append new bosses with a fresh ordinal, never renumber.
func DefaultBosses() []Boss {
	return []Boss{
		{Ordinal: 0, Key: "abyssal_sire", Name: "Abyssal Sire", XPPerKill: 450, Icon: "abyssal_sire.png"},
		{Ordinal: 1, Key: "alchemical_hydra", Name: "Alchemical Hydra", XPPerKill: 700, Icon: "alchemical_hydra.png"},
		{Ordinal: 2, Key: "bryophyta", Name: "Bryophyta", XPPerKill: 60, Icon: "bryophyta.png"},
		{Ordinal: 3, Key: "callisto", Name: "Callisto", XPPerKill: 500, Icon: "callisto.png"},
		{Ordinal: 4, Key: "cerberus", Name: "Cerberus", XPPerKill: 550, Icon: "cerberus.png"},
		{Ordinal: 5, Key: "chaos_elemental", Name: "Chaos Elemental", XPPerKill: 250, Icon: "chaos_elemental.png"},
		{Ordinal: 6, Key: "commander_zilyana", Name: "Commander Zilyana", XPPerKill: 600, Icon: "commander_zilyana.png"},
		{Ordinal: 7, Key: "corporeal_beast", Name: "Corporeal Beast", XPPerKill: 1500, Icon: "corporeal_beast.png"},
		{Ordinal: 8, Key: "dagannoth_prime", Name: "Dagannoth Prime", XPPerKill: 200, Icon: "dagannoth_prime.png"},
		{Ordinal: 9, Key: "dagannoth_rex", Name: "Dagannoth Rex", XPPerKill: 200, Icon: "dagannoth_rex.png"},
		{Ordinal: 10, Key: "dagannoth_supreme", Name: "Dagannoth Supreme", XPPerKill: 200, Icon: "dagannoth_supreme.png"},
		{Ordinal: 11, Key: "duke_sucellus", Name: "Duke Sucellus", XPPerKill: 800, Icon: "duke_sucellus.png"},
		{Ordinal: 12, Key: "general_graardor", Name: "General Graardor", XPPerKill: 550, Icon: "general_graardor.png"},
		{Ordinal: 13, Key: "giant_mole", Name: "Giant Mole", XPPerKill: 120, Icon: "giant_mole.png"},
		{Ordinal: 14, Key: "grotesque_guardians", Name: "Grotesque Guardians", XPPerKill: 500, Icon: "grotesque_guardians.png"},
		{Ordinal: 15, Key: "hespori", Name: "Hespori", XPPerKill: 100, Icon: "hespori.png"},
		{Ordinal: 16, Key: "kalphite_queen", Name: "Kalphite Queen", XPPerKill: 400, Icon: "kalphite_queen.png"},
		{Ordinal: 17, Key: "king_black_dragon", Name: "King Black Dragon", XPPerKill: 150, Icon: "king_black_dragon.png"},
		{Ordinal: 18, Key: "kraken", Name: "Kraken", XPPerKill: 120, Icon: "kraken.png"},
		{Ordinal: 19, Key: "kreearra", Name: "Kree'Arra", XPPerKill: 650, Icon: "kreearra.png"},
		{Ordinal: 20, Key: "kril_tsutsaroth", Name: "K'ril Tsutsaroth", XPPerKill: 600, Icon: "kril_tsutsaroth.png"},
		{Ordinal: 21, Key: "nex", Name: "Nex", XPPerKill: 2000, Icon: "nex.png"},
		{Ordinal: 22, Key: "obor", Name: "Obor", XPPerKill: 60, Icon: "obor.png"},
		{Ordinal: 23, Key: "phosanis_nightmare", Name: "Phosani's Nightmare", XPPerKill: 2500, Icon: "phosanis_nightmare.png"},
		{Ordinal: 24, Key: "sarachnis", Name: "Sarachnis", XPPerKill: 150, Icon: "sarachnis.png"},
		{Ordinal: 25, Key: "scorpia", Name: "Scorpia", XPPerKill: 300, Icon: "scorpia.png"},
		{Ordinal: 26, Key: "scurrius", Name: "Scurrius", XPPerKill: 50, Icon: "scurrius.png"},
		{Ordinal: 27, Key: "skotizo", Name: "Skotizo", XPPerKill: 350, Icon: "skotizo.png"},
		{Ordinal: 28, Key: "tempoross", Name: "Tempoross", XPPerKill: 100, Icon: "tempoross.png"},
		{Ordinal: 29, Key: "the_leviathan", Name: "The Leviathan", XPPerKill: 800, Icon: "the_leviathan.png"},
		{Ordinal: 30, Key: "the_nightmare", Name: "The Nightmare", XPPerKill: 1800, Icon: "the_nightmare.png"},
		{Ordinal: 31, Key: "the_whisperer", Name: "The Whisperer", XPPerKill: 900, Icon: "the_whisperer.png"},
		{Ordinal: 32, Key: "thermonuclear_smoke_devil", Name: "Thermonuclear Smoke Devil", XPPerKill: 200, Icon: "thermonuclear_smoke_devil.png"},
		{Ordinal: 33, Key: "tztok_jad", Name: "TzTok-Jad", XPPerKill: 5000, Icon: "tztok_jad.png"},
		{Ordinal: 34, Key: "tzkal_zuk", Name: "TzKal-Zuk", XPPerKill: 25000, Icon: "tzkal_zuk.png"},
		{Ordinal: 35, Key: "vardorvis", Name: "Vardorvis", XPPerKill: 750, Icon: "vardorvis.png"},
		{Ordinal: 36, Key: "venenatis", Name: "Venenatis", XPPerKill: 500, Icon: "venenatis.png"},
		{Ordinal: 37, Key: "vetion", Name: "Vet'ion", XPPerKill: 500, Icon: "vetion.png"},
		{Ordinal: 38, Key: "vorkath", Name: "Vorkath", XPPerKill: 650, Icon: "vorkath.png"},
		{Ordinal: 39, Key: "wintertodt", Name: "Wintertodt", XPPerKill: 80, Icon: "wintertodt.png"},
		{Ordinal: 40, Key: "zalcano", Name: "Zalcano", XPPerKill: 300, Icon: "zalcano.png"},
		{Ordinal: 41, Key: "zulrah", Name: "Zulrah", XPPerKill: 500, Icon: "zulrah.png"},
	}
}

func NewDefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultBosses())
	if err != nil {
		panic("logic error: default bosses are invalid: " + err.Error())
	}
	return registry
}
