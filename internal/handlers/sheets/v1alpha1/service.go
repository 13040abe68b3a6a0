package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	// CharacterServiceName is the fully qualified character service name
	CharacterServiceName = "rpgsheets.v1alpha1.CharacterService"
	// BattleServiceName is the fully qualified battle service name
	BattleServiceName = "rpgsheets.v1alpha1.BattleService"
)

// CharacterServiceServer is the server API for the character service
type CharacterServiceServer interface {
	SaveCharacter(context.Context, *SaveCharacterRequest) (*SaveCharacterResponse, error)
	GetCharacter(context.Context, *GetCharacterRequest) (*GetCharacterResponse, error)
	DeleteCharacter(context.Context, *DeleteCharacterRequest) (*DeleteCharacterResponse, error)
	ListCharacters(context.Context, *ListCharactersRequest) (*ListCharactersResponse, error)
}

// BattleServiceServer is the server API for the battle service
type BattleServiceServer interface {
	CreateBattle(context.Context, *CreateBattleRequest) (*CreateBattleResponse, error)
	GetBattle(context.Context, *GetBattleRequest) (*GetBattleResponse, error)
	ListCombatants(context.Context, *ListCombatantsRequest) (*ListCombatantsResponse, error)
	AddParticipant(context.Context, *AddParticipantRequest) (*AddParticipantResponse, error)
	RollInitiative(context.Context, *RollInitiativeRequest) (*RollInitiativeResponse, error)
	StartBattle(context.Context, *StartBattleRequest) (*StartBattleResponse, error)
	NextTurn(context.Context, *NextTurnRequest) (*NextTurnResponse, error)
	ResetBattle(context.Context, *ResetBattleRequest) (*ResetBattleResponse, error)
	EndBattle(context.Context, *EndBattleRequest) (*EndBattleResponse, error)
}

// CharacterServiceDesc describes the character service for grpc.Server
var CharacterServiceDesc = grpc.ServiceDesc{
	ServiceName: CharacterServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CharacterServiceName, "SaveCharacter", CharacterServiceServer.SaveCharacter),
		unary(CharacterServiceName, "GetCharacter", CharacterServiceServer.GetCharacter),
		unary(CharacterServiceName, "DeleteCharacter", CharacterServiceServer.DeleteCharacter),
		unary(CharacterServiceName, "ListCharacters", CharacterServiceServer.ListCharacters),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgsheets/v1alpha1/character.json",
}

// BattleServiceDesc describes the battle service for grpc.Server
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: BattleServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(BattleServiceName, "CreateBattle", BattleServiceServer.CreateBattle),
		unary(BattleServiceName, "GetBattle", BattleServiceServer.GetBattle),
		unary(BattleServiceName, "ListCombatants", BattleServiceServer.ListCombatants),
		unary(BattleServiceName, "AddParticipant", BattleServiceServer.AddParticipant),
		unary(BattleServiceName, "RollInitiative", BattleServiceServer.RollInitiative),
		unary(BattleServiceName, "StartBattle", BattleServiceServer.StartBattle),
		unary(BattleServiceName, "NextTurn", BattleServiceServer.NextTurn),
		unary(BattleServiceName, "ResetBattle", BattleServiceServer.ResetBattle),
		unary(BattleServiceName, "EndBattle", BattleServiceServer.EndBattle),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgsheets/v1alpha1/battle.json",
}

// RegisterCharacterServiceServer registers srv on s
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&CharacterServiceDesc, srv)
}

// RegisterBattleServiceServer registers srv on s
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

func unary[S, Req, Resp any](
	service, method string,
	call func(S, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CharacterServiceClient is the client API for the character service
type CharacterServiceClient interface {
	SaveCharacter(ctx context.Context, in *SaveCharacterRequest, opts ...grpc.CallOption) (*SaveCharacterResponse, error)
	GetCharacter(ctx context.Context, in *GetCharacterRequest, opts ...grpc.CallOption) (*GetCharacterResponse, error)
	DeleteCharacter(ctx context.Context, in *DeleteCharacterRequest, opts ...grpc.CallOption) (*DeleteCharacterResponse, error)
	ListCharacters(ctx context.Context, in *ListCharactersRequest, opts ...grpc.CallOption) (*ListCharactersResponse, error)
}

// BattleServiceClient is the client API for the battle service
type BattleServiceClient interface {
	CreateBattle(ctx context.Context, in *CreateBattleRequest, opts ...grpc.CallOption) (*CreateBattleResponse, error)
	GetBattle(ctx context.Context, in *GetBattleRequest, opts ...grpc.CallOption) (*GetBattleResponse, error)
	ListCombatants(ctx context.Context, in *ListCombatantsRequest, opts ...grpc.CallOption) (*ListCombatantsResponse, error)
	AddParticipant(ctx context.Context, in *AddParticipantRequest, opts ...grpc.CallOption) (*AddParticipantResponse, error)
	RollInitiative(ctx context.Context, in *RollInitiativeRequest, opts ...grpc.CallOption) (*RollInitiativeResponse, error)
	StartBattle(ctx context.Context, in *StartBattleRequest, opts ...grpc.CallOption) (*StartBattleResponse, error)
	NextTurn(ctx context.Context, in *NextTurnRequest, opts ...grpc.CallOption) (*NextTurnResponse, error)
	ResetBattle(ctx context.Context, in *ResetBattleRequest, opts ...grpc.CallOption) (*ResetBattleResponse, error)
	EndBattle(ctx context.Context, in *EndBattleRequest, opts ...grpc.CallOption) (*EndBattleResponse, error)
}

type characterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCharacterServiceClient returns a client that always speaks the json codec
func NewCharacterServiceClient(cc grpc.ClientConnInterface) CharacterServiceClient {
	return &characterServiceClient{cc: cc}
}

func (c *characterServiceClient) SaveCharacter(ctx context.Context, in *SaveCharacterRequest, opts ...grpc.CallOption) (*SaveCharacterResponse, error) {
	return invoke[SaveCharacterResponse](ctx, c.cc, CharacterServiceName, "SaveCharacter", in, opts)
}

func (c *characterServiceClient) GetCharacter(ctx context.Context, in *GetCharacterRequest, opts ...grpc.CallOption) (*GetCharacterResponse, error) {
	return invoke[GetCharacterResponse](ctx, c.cc, CharacterServiceName, "GetCharacter", in, opts)
}

func (c *characterServiceClient) DeleteCharacter(ctx context.Context, in *DeleteCharacterRequest, opts ...grpc.CallOption) (*DeleteCharacterResponse, error) {
	return invoke[DeleteCharacterResponse](ctx, c.cc, CharacterServiceName, "DeleteCharacter", in, opts)
}

func (c *characterServiceClient) ListCharacters(ctx context.Context, in *ListCharactersRequest, opts ...grpc.CallOption) (*ListCharactersResponse, error) {
	return invoke[ListCharactersResponse](ctx, c.cc, CharacterServiceName, "ListCharacters", in, opts)
}

type battleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBattleServiceClient returns a client that always speaks the json codec
func NewBattleServiceClient(cc grpc.ClientConnInterface) BattleServiceClient {
	return &battleServiceClient{cc: cc}
}

func (c *battleServiceClient) CreateBattle(ctx context.Context, in *CreateBattleRequest, opts ...grpc.CallOption) (*CreateBattleResponse, error) {
	return invoke[CreateBattleResponse](ctx, c.cc, BattleServiceName, "CreateBattle", in, opts)
}

func (c *battleServiceClient) GetBattle(ctx context.Context, in *GetBattleRequest, opts ...grpc.CallOption) (*GetBattleResponse, error) {
	return invoke[GetBattleResponse](ctx, c.cc, BattleServiceName, "GetBattle", in, opts)
}

func (c *battleServiceClient) ListCombatants(ctx context.Context, in *ListCombatantsRequest, opts ...grpc.CallOption) (*ListCombatantsResponse, error) {
	return invoke[ListCombatantsResponse](ctx, c.cc, BattleServiceName, "ListCombatants", in, opts)
}

func (c *battleServiceClient) AddParticipant(ctx context.Context, in *AddParticipantRequest, opts ...grpc.CallOption) (*AddParticipantResponse, error) {
	return invoke[AddParticipantResponse](ctx, c.cc, BattleServiceName, "AddParticipant", in, opts)
}

func (c *battleServiceClient) RollInitiative(ctx context.Context, in *RollInitiativeRequest, opts ...grpc.CallOption) (*RollInitiativeResponse, error) {
	return invoke[RollInitiativeResponse](ctx, c.cc, BattleServiceName, "RollInitiative", in, opts)
}

func (c *battleServiceClient) StartBattle(ctx context.Context, in *StartBattleRequest, opts ...grpc.CallOption) (*StartBattleResponse, error) {
	return invoke[StartBattleResponse](ctx, c.cc, BattleServiceName, "StartBattle", in, opts)
}

func (c *battleServiceClient) NextTurn(ctx context.Context, in *NextTurnRequest, opts ...grpc.CallOption) (*NextTurnResponse, error) {
	return invoke[NextTurnResponse](ctx, c.cc, BattleServiceName, "NextTurn", in, opts)
}

func (c *battleServiceClient) ResetBattle(ctx context.Context, in *ResetBattleRequest, opts ...grpc.CallOption) (*ResetBattleResponse, error) {
	return invoke[ResetBattleResponse](ctx, c.cc, BattleServiceName, "ResetBattle", in, opts)
}

func (c *battleServiceClient) EndBattle(ctx context.Context, in *EndBattleRequest, opts ...grpc.CallOption) (*EndBattleResponse, error) {
	return invoke[EndBattleResponse](ctx, c.cc, BattleServiceName, "EndBattle", in, opts)
}

func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	service, method string,
	in any,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
