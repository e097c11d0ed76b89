package game

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/DuDupedrosa/memory-game-api/internal/models"
	"github.com/DuDupedrosa/memory-game-api/internal/registry"
)

type fakeStore struct {
	rooms       map[uint]*models.Room
	scores      map[uint]*models.Score
	nextScoreID uint
	mutations   int
	failNext    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:  make(map[uint]*models.Room),
		scores: make(map[uint]*models.Score),
	}
}

func (s *fakeStore) fail() error {
	if s.failNext != nil {
		err := s.failNext
		return err
	}
	return nil
}

func (s *fakeStore) FindRoom(roomID uint) (*models.Room, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, nil
	}
	copied := *room
	return &copied, nil
}

func (s *fakeStore) StartMatch(roomID uint, matchRandomNumber int, playerID string) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	room := s.rooms[roomID]
	room.MatchRandomNumber = &matchRandomNumber
	room.PlayerReleasedToPlay = playerID
	return nil
}

func (s *fakeStore) SetTurn(roomID uint, playerID string) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	s.rooms[roomID].PlayerReleasedToPlay = playerID
	return nil
}

func (s *fakeStore) SetPlayerTwoReady(roomID uint, ready bool) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	s.rooms[roomID].PlayerTwoIsReadyToPlay = ready
	return nil
}

func (s *fakeStore) ResetRoom(roomID uint, ownerID string) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	room := s.rooms[roomID]
	room.GuestID = nil
	room.Players = models.PlayerList{ownerID}
	room.PlayerReleasedToPlay = ownerID
	room.PlayerTwoIsReadyToPlay = false
	return nil
}

func (s *fakeStore) FindScore(roomID uint, playerID string) (*models.Score, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, score := range s.scores {
		if score.RoomID == roomID && score.PlayerID == playerID {
			copied := *score
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateScore(score *models.Score) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	s.nextScoreID++
	score.ID = s.nextScoreID
	copied := *score
	s.scores[score.ID] = &copied
	return nil
}

func (s *fakeStore) SetScoreValue(scoreID uint, value int) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	s.scores[scoreID].Value = value
	return nil
}

func (s *fakeStore) DeleteScores(roomID uint) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.mutations++
	for id, score := range s.scores {
		if score.RoomID == roomID {
			delete(s.scores, id)
		}
	}
	return nil
}

func (s *fakeStore) scoreCount(roomID uint) int {
	n := 0
	for _, score := range s.scores {
		if score.RoomID == roomID {
			n++
		}
	}
	return n
}

type emission struct {
	event string
	data  map[string]any
}

type fakeClient struct {
	joined  []string
	emitted []emission
}

func (c *fakeClient) Join(roomID string) { c.joined = append(c.joined, roomID) }

func (c *fakeClient) Emit(event string, data any) {
	c.emitted = append(c.emitted, emission{event: event, data: data.(map[string]any)})
}

type broadcastRec struct {
	roomID string
	event  string
	data   map[string]any
}

type fakeBus struct {
	sent []broadcastRec
}

func (b *fakeBus) Broadcast(roomID string, event string, data any) {
	b.sent = append(b.sent, broadcastRec{roomID: roomID, event: event, data: data.(map[string]any)})
}

func (b *fakeBus) last(t *testing.T) broadcastRec {
	t.Helper()
	if len(b.sent) == 0 {
		t.Fatal("no broadcast sent")
	}
	return b.sent[len(b.sent)-1]
}

type fixture struct {
	coord  *Coordinator
	reg    *registry.Registry
	store  *fakeStore
	bus    *fakeBus
	client *fakeClient
}

func newFixture() *fixture {
	reg := registry.New()
	store := newFakeStore()
	bus := &fakeBus{}
	return &fixture{
		coord:  NewCoordinator(reg, store, bus),
		reg:    reg,
		store:  store,
		bus:    bus,
		client: &fakeClient{},
	}
}

// seedRoom puts a two-player room both in the registry and in the store.
func (f *fixture) seedRoom(id uint, owner, guest string, level int) *models.Room {
	guestID := guest
	room := &models.Room{
		ID:                   id,
		OwnerID:              owner,
		GuestID:              &guestID,
		Players:              models.PlayerList{owner, guest},
		Level:                level,
		PlayerReleasedToPlay: owner,
	}
	f.store.rooms[id] = room
	key := strconv.FormatUint(uint64(id), 10)
	f.reg.Create(key, owner)
	f.reg.Join(key, guest)
	return room
}

func TestStartGameScenario(t *testing.T) {
	f := newFixture()
	f.store.rooms[42] = &models.Room{ID: 42, OwnerID: "A", Players: models.PlayerList{"A"}, Level: models.LevelEasy}

	f.coord.HandleCreateRoom(f.client, CreateRoomData{RoomID: "42", OwnerID: "A"})
	f.coord.HandleJoinRoom(f.client, JoinRoomData{RoomID: "42", PlayerID: "A"})
	f.coord.HandleJoinRoom(f.client, JoinRoomData{RoomID: "42", PlayerID: "B"})
	f.coord.HandleStartGame(f.client, StartGameData{RoomID: "42", PlayerID: "A"})

	room := f.store.rooms[42]
	if room.MatchRandomNumber == nil {
		t.Fatal("match random number not persisted")
	}
	if *room.MatchRandomNumber < 0 || *room.MatchRandomNumber >= 1000000 {
		t.Errorf("matchRandomNumber = %d, want [0, 1000000)", *room.MatchRandomNumber)
	}
	if room.PlayerReleasedToPlay != "A" {
		t.Errorf("playerReleasedToPlay = %q, want A", room.PlayerReleasedToPlay)
	}

	last := f.bus.last(t)
	if last.event != EventGameStarted || last.data["roomId"] != "42" {
		t.Errorf("last broadcast = %s %v, want startGame roomId=42", last.event, last.data)
	}

	vol, _ := f.reg.Get("42")
	if len(vol.Players) != 2 || vol.Players[0] != "A" || vol.Players[1] != "B" {
		t.Errorf("registry players = %v, want [A B]", vol.Players)
	}
}

func TestCreateRoomAnswersCallerOnly(t *testing.T) {
	f := newFixture()
	f.coord.HandleCreateRoom(f.client, CreateRoomData{RoomID: "42", OwnerID: "A"})

	if len(f.bus.sent) != 0 {
		t.Errorf("roomCreated went room-wide: %v", f.bus.sent)
	}
	if len(f.client.emitted) != 1 || f.client.emitted[0].event != EventRoomCreated {
		t.Fatalf("emitted = %v, want one roomCreated", f.client.emitted)
	}
	if len(f.client.joined) != 1 || f.client.joined[0] != "42" {
		t.Errorf("client joined %v, want [42]", f.client.joined)
	}
}

func TestJoinRoomHydratesFromStore(t *testing.T) {
	f := newFixture()
	f.store.rooms[42] = &models.Room{ID: 42, OwnerID: "A", Players: models.PlayerList{"A"}}

	f.coord.HandleJoinRoom(f.client, JoinRoomData{RoomID: "42", PlayerID: "B"})

	vol, ok := f.reg.Get("42")
	if !ok {
		t.Fatal("registry not hydrated")
	}
	if len(vol.Players) != 2 || vol.Players[0] != "A" || vol.Players[1] != "B" {
		t.Errorf("players = %v, want [A B]", vol.Players)
	}

	last := f.bus.last(t)
	if last.event != EventPlayerJoined || last.data["playerId"] != "B" {
		t.Errorf("broadcast = %s %v, want playerJoined B", last.event, last.data)
	}
}

func TestJoinRoomUnknownEverywhere(t *testing.T) {
	f := newFixture()
	f.coord.HandleJoinRoom(f.client, JoinRoomData{RoomID: "42", PlayerID: "B"})

	if len(f.bus.sent) != 0 {
		t.Errorf("unexpected broadcast: %v", f.bus.sent)
	}
	if len(f.client.emitted) != 1 || f.client.emitted[0].event != EventError {
		t.Fatalf("emitted = %v, want one error", f.client.emitted)
	}
}

func TestStartGameUnknownVolatileRoomErrorsRoomWide(t *testing.T) {
	f := newFixture()
	f.coord.HandleStartGame(f.client, StartGameData{RoomID: "42", PlayerID: "A"})

	last := f.bus.last(t)
	if last.event != EventError || last.data["message"] != "Room not found" {
		t.Errorf("broadcast = %s %v, want room-wide error", last.event, last.data)
	}
	if f.store.mutations != 0 {
		t.Errorf("store mutated %d times, want 0", f.store.mutations)
	}
}

func TestStartGameDurableRoomMissing(t *testing.T) {
	f := newFixture()
	f.reg.Create("42", "A")

	f.coord.HandleStartGame(f.client, StartGameData{RoomID: "42", PlayerID: "A"})

	last := f.bus.last(t)
	if last.event != EventError {
		t.Errorf("broadcast = %s, want error", last.event)
	}
	if f.store.mutations != 0 {
		t.Errorf("store mutated %d times, want 0", f.store.mutations)
	}
}

func TestFlipCardRelaysRoomWide(t *testing.T) {
	f := newFixture()
	f.reg.Create("42", "A")

	f.coord.HandleFlipCard(f.client, FlipCardData{RoomID: "42", ID: 7})

	last := f.bus.last(t)
	if last.event != EventFlippedCard || last.data["id"] != 7 || last.data["roomId"] != "42" {
		t.Errorf("broadcast = %s %v, want flippedCard id=7", last.event, last.data)
	}
	if f.store.mutations != 0 {
		t.Error("flip relay touched the store")
	}
}

func TestChangeTurnToggles(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)

	f.coord.HandleChangePlayerTurn(f.client, ChangePlayerTurnData{RoomID: "42"})
	if got := f.store.rooms[42].PlayerReleasedToPlay; got != "B" {
		t.Fatalf("turn = %q, want B", got)
	}
	last := f.bus.last(t)
	if last.event != EventChangedPlayerTurn || last.data["playerId"] != "B" {
		t.Errorf("broadcast = %s %v, want changedPlayerTurn B", last.event, last.data)
	}

	f.coord.HandleChangePlayerTurn(f.client, ChangePlayerTurnData{RoomID: "42"})
	if got := f.store.rooms[42].PlayerReleasedToPlay; got != "A" {
		t.Errorf("turn after second toggle = %q, want A", got)
	}
}

func TestChangeTurnSinglePlayerFails(t *testing.T) {
	f := newFixture()
	f.store.rooms[42] = &models.Room{
		ID: 42, OwnerID: "A",
		Players:              models.PlayerList{"A"},
		PlayerReleasedToPlay: "A",
	}
	f.reg.Create("42", "A")

	f.coord.HandleChangePlayerTurn(f.client, ChangePlayerTurnData{RoomID: "42"})

	if len(f.client.emitted) != 1 || f.client.emitted[0].data["message"] != "otherPlayer not found" {
		t.Fatalf("emitted = %v, want otherPlayer not found", f.client.emitted)
	}
	if f.store.mutations != 0 {
		t.Errorf("store mutated %d times, want 0", f.store.mutations)
	}
}

func TestMakePointEasyThreshold(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)

	for i := 0; i < 3; i++ {
		f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "A"})
	}

	last := f.bus.last(t)
	if last.event != EventMarkedPoint || last.data["value"] != 3 {
		t.Errorf("third broadcast = %s %v, want markedPoint value=3", last.event, last.data)
	}
	if n := f.store.scoreCount(42); n != 0 {
		t.Errorf("%d score rows left after threshold, want 0", n)
	}

	f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "A"})
	last = f.bus.last(t)
	if last.data["value"] != 1 {
		t.Errorf("fourth broadcast value = %v, want fresh row at 1", last.data["value"])
	}
}

func TestMakePointMediumThreshold(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelMedium)

	for i := 0; i < 4; i++ {
		f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "A"})
	}
	if n := f.store.scoreCount(42); n != 1 {
		t.Fatalf("score rows before threshold = %d, want 1", n)
	}

	f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "A"})
	if n := f.store.scoreCount(42); n != 0 {
		t.Errorf("score rows after fifth point = %d, want 0", n)
	}
}

func TestMakePointWipesBothPlayersRows(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)

	f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "B"})
	for i := 0; i < 3; i++ {
		f.coord.HandleMakePoint(f.client, MakePointData{RoomID: "42", PlayerID: "A"})
	}

	if n := f.store.scoreCount(42); n != 0 {
		t.Errorf("%d score rows left, want the whole room wiped", n)
	}
}

func TestGameWinClearsStateAndIsIdempotent(t *testing.T) {
	f := newFixture()
	room := f.seedRoom(42, "A", "B", models.LevelEasy)
	room.PlayerTwoIsReadyToPlay = true
	f.store.scores[1] = &models.Score{ID: 1, RoomID: 42, PlayerID: "A", Value: 2}
	f.store.nextScoreID = 1

	f.coord.HandleGameWin(f.client, GameWinData{RoomID: "42", WinnerPlayerID: "A"})
	if f.store.rooms[42].PlayerTwoIsReadyToPlay {
		t.Error("playerTwoIsReadyToPlay still set after win")
	}
	if n := f.store.scoreCount(42); n != 0 {
		t.Errorf("%d score rows left after win, want 0", n)
	}
	last := f.bus.last(t)
	if last.event != EventGameWon || last.data["winnerPlayerId"] != "A" {
		t.Errorf("broadcast = %s %v, want gameWin winner=A", last.event, last.data)
	}

	// Second call must still broadcast; the score wipe is a no-op.
	before := len(f.bus.sent)
	f.coord.HandleGameWin(f.client, GameWinData{RoomID: "42", WinnerPlayerID: "A"})
	if len(f.bus.sent) != before+1 {
		t.Error("second gameWin did not broadcast")
	}
}

func TestExitGameResetsRoom(t *testing.T) {
	f := newFixture()
	room := f.seedRoom(42, "A", "B", models.LevelEasy)
	room.PlayerReleasedToPlay = "B"
	room.PlayerTwoIsReadyToPlay = true
	f.store.scores[1] = &models.Score{ID: 1, RoomID: 42, PlayerID: "B", Value: 2}

	f.coord.HandleExitGame(f.client, ExitGameData{RoomID: "42", PlayerID: "B"})

	got := f.store.rooms[42]
	if got.GuestID != nil {
		t.Error("guestId not cleared")
	}
	if len(got.Players) != 1 || got.Players[0] != "A" {
		t.Errorf("players = %v, want [A]", got.Players)
	}
	if got.PlayerReleasedToPlay != "A" {
		t.Errorf("turn token = %q, want owner A", got.PlayerReleasedToPlay)
	}
	if got.PlayerTwoIsReadyToPlay {
		t.Error("playerTwoIsReadyToPlay not cleared")
	}
	if n := f.store.scoreCount(42); n != 0 {
		t.Errorf("%d score rows left, want 0", n)
	}

	last := f.bus.last(t)
	if last.event != EventGameExited || last.data["playerId"] != "B" {
		t.Errorf("broadcast = %s %v, want exitGame B", last.event, last.data)
	}
}

func TestUserLoggedOutRunsSameReset(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)

	f.coord.HandleUserLoggedOut(f.client, ExitGameData{RoomID: "42", PlayerID: "B"})

	got := f.store.rooms[42]
	if got.GuestID != nil || len(got.Players) != 1 {
		t.Errorf("room not reset: guest=%v players=%v", got.GuestID, got.Players)
	}
	if last := f.bus.last(t); last.event != EventLoggedOut {
		t.Errorf("broadcast = %s, want userLoggedOut", last.event)
	}
}

func TestReadyToPlayNotifiesOwner(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)

	f.coord.HandleReadyToPlay(f.client, ReadyToPlayData{RoomID: "42"})

	if !f.store.rooms[42].PlayerTwoIsReadyToPlay {
		t.Error("playerTwoIsReadyToPlay not set")
	}
	last := f.bus.last(t)
	if last.event != EventPlayerReady || last.data["ownerId"] != "A" {
		t.Errorf("broadcast = %s %v, want readyToPlay ownerId=A", last.event, last.data)
	}
}

func TestUnknownRoomGuards(t *testing.T) {
	cases := []struct {
		name string
		call func(*Coordinator, Client)
	}{
		{"flipCard", func(c *Coordinator, cl Client) {
			c.HandleFlipCard(cl, FlipCardData{RoomID: "404", ID: 1})
		}},
		{"changePlayerTurn", func(c *Coordinator, cl Client) {
			c.HandleChangePlayerTurn(cl, ChangePlayerTurnData{RoomID: "404"})
		}},
		{"makePoint", func(c *Coordinator, cl Client) {
			c.HandleMakePoint(cl, MakePointData{RoomID: "404", PlayerID: "A"})
		}},
		{"gameWin", func(c *Coordinator, cl Client) {
			c.HandleGameWin(cl, GameWinData{RoomID: "404", WinnerPlayerID: "A"})
		}},
		{"exitGame", func(c *Coordinator, cl Client) {
			c.HandleExitGame(cl, ExitGameData{RoomID: "404", PlayerID: "A"})
		}},
		{"userLoggedOut", func(c *Coordinator, cl Client) {
			c.HandleUserLoggedOut(cl, ExitGameData{RoomID: "404", PlayerID: "A"})
		}},
		{"readyToPlay", func(c *Coordinator, cl Client) {
			c.HandleReadyToPlay(cl, ReadyToPlayData{RoomID: "404"})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			tc.call(f.coord, f.client)

			if len(f.client.emitted) != 1 || f.client.emitted[0].event != EventError {
				t.Fatalf("emitted = %v, want exactly one error", f.client.emitted)
			}
			if f.store.mutations != 0 {
				t.Errorf("store mutated %d times, want 0", f.store.mutations)
			}
			if len(f.bus.sent) != 0 {
				t.Errorf("unexpected broadcast: %v", f.bus.sent)
			}
		})
	}
}

func TestStoreFailureIsLoggedButSilent(t *testing.T) {
	f := newFixture()
	f.seedRoom(42, "A", "B", models.LevelEasy)
	f.store.failNext = errors.New("connection refused")

	f.coord.HandleExitGame(f.client, ExitGameData{RoomID: "42", PlayerID: "B"})

	if len(f.bus.sent) != 0 {
		t.Errorf("broadcast despite store failure: %v", f.bus.sent)
	}
	if len(f.client.emitted) != 0 {
		t.Errorf("error emitted despite silent-failure contract: %v", f.client.emitted)
	}
}

func TestDispatchRoutesFrames(t *testing.T) {
	f := newFixture()
	raw := json.RawMessage(`{"roomId":"42","ownerId":"A"}`)

	f.coord.Dispatch(f.client, EventCreateRoom, raw)

	if len(f.client.emitted) != 1 || f.client.emitted[0].event != EventRoomCreated {
		t.Fatalf("emitted = %v, want roomCreated", f.client.emitted)
	}
	if !f.reg.Exists("42") {
		t.Error("room not registered through dispatch")
	}
}

func TestDispatchRejectsMalformedPayload(t *testing.T) {
	f := newFixture()
	f.coord.Dispatch(f.client, EventCreateRoom, json.RawMessage(`{"roomId":42}`))

	if len(f.client.emitted) != 1 || f.client.emitted[0].event != EventError {
		t.Fatalf("emitted = %v, want one error", f.client.emitted)
	}
}
