package constants

// Centralized constants for env keys, default paths and combat messages.
const (
	// Environment variable keys
	EnvConfigPath = "STARRY_CONFIG"
	EnvCombatLog  = "STARRY_COMBAT_LOG"
	EnvDBPath     = "STARRY_DB"
	EnvLogLevel   = "STARRY_LOG_LEVEL"

	// Default file locations, relative to the working directory.
	DefaultConfigPath    = "./starry_config.json"
	DefaultCombatLogPath = "./combat_log.csv"
)

// CombatLogHeader is the header row of the combat-log CSV. External
// analytics read the file by these column names.
var CombatLogHeader = []string{"Name", "DamageDealt", "HealingDone", "DamageMitigated", "Movesets"}

// Battle messages shown through the action message side-channel.
const (
	MsgChooseAction   = "Choose your action!"
	MsgYouWin         = "You win!"
	MsgYouLose        = "You lose!"
	MsgParried        = "Parry! No damage taken!"
	MsgInvalidAbility = "Invalid ability!"
	MsgInvalidItem    = "Invalid item!"
	MsgInvalidAction  = "Invalid action!"

	// Formats taking the combatant name first.
	MsgAttackFmt        = "%s attacks for %d damage!"
	MsgDefendFmt        = "%s defends!"
	MsgHesitateFmt      = "%s hesitates."
	MsgNotEnoughManaFmt = "Not enough mana for %s!"
	MsgFireballFmt      = "%s casts Fireball for %d damage!"
	MsgHealFmt          = "%s heals for %d HP!"
	MsgBashFmt          = "%s bashes %s for %d damage!"
	MsgShieldFmt        = "%s shields, increasing defense by %d!"
	MsgSwipeFmt         = "%s swipes at %s for %d damage!"
	MsgKickFmt          = "%s kicks %s for %d damage!"
	MsgSmokeFmt         = "%s vanishes into a cloud of smoke!"
	MsgPotionFmt        = "%s uses a potion to restore %d HP!"
	MsgElixirFmt        = "%s uses an elixir to restore %d mana!"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldStage    = "stage"
	LogFieldOutcome  = "outcome"
	LogFieldPlayer   = "player"
	LogFieldEnemy    = "enemy"
	LogFieldMatchup  = "matchup"
	LogFieldPath     = "path"
	LogFieldBattles  = "battles"
	LogFieldWorkers  = "workers"
	LogFieldVersion  = "version"
	LogFieldCommit   = "commit"
)
