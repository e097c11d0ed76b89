package game

// Inbound events, one per client request on the game channel.
const (
	EventCreateRoom       = "createRoom"
	EventJoinRoom         = "joinRoom"
	EventStartGame        = "requestStartGame"
	EventFlipCard         = "requestFlipCard"
	EventChangePlayerTurn = "requestChangePlayerTurn"
	EventMakePoint        = "requestMakePoint"
	EventGameWin          = "requestGameWin"
	EventExitGame         = "requestExitGame"
	EventUserLoggedOut    = "requestUserLoggedOut"
	EventReadyToPlay      = "requestReadyToPlay"
)

// Outbound events.
const (
	EventRoomCreated       = "roomCreated"
	EventPlayerJoined      = "playerJoined"
	EventGameStarted       = "startGame"
	EventFlippedCard       = "flippedCard"
	EventChangedPlayerTurn = "changedPlayerTurn"
	EventMarkedPoint       = "markedPoint"
	EventGameWon           = "gameWin"
	EventGameExited        = "exitGame"
	EventLoggedOut         = "userLoggedOut"
	EventPlayerReady       = "readyToPlay"
	EventError             = "error"
)

type CreateRoomData struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
	OwnerID  string `json:"ownerId"`
}

type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
	PlayerID string `json:"playerId"`
}

type StartGameData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type FlipCardData struct {
	RoomID string `json:"roomId"`
	ID     int    `json:"id"`
}

type ChangePlayerTurnData struct {
	RoomID string `json:"roomId"`
}

type MakePointData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type GameWinData struct {
	RoomID         string `json:"roomId"`
	WinnerPlayerID string `json:"winnerPlayerId"`
}

type ExitGameData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type ReadyToPlayData struct {
	RoomID string `json:"roomId"`
}
