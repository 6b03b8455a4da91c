package converter

import (
	"time"

	dto "neuroflash/internal/api/dto/arcade"
	"neuroflash/internal/model"
	"neuroflash/internal/service"
)

func ToCreateSessionParams(req dto.CreateSessionRequest, acceptLanguage string) service.CreateSessionParams {
	return service.CreateSessionParams{
		Language:       req.Language,
		AcceptLanguage: acceptLanguage,
		Assets:         ToAssetPack(req.Assets),
	}
}

func ToCreateSessionResponse(s model.Session) dto.CreateSessionResponse {
	return dto.CreateSessionResponse{
		SessionID:   s.ID,
		AccessToken: s.AccessToken,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		State:       ToStateResponse(s.Snapshot),
	}
}

func ToAssetPack(body *dto.AssetsBody) *model.AssetPack {
	if body == nil {
		return nil
	}
	return &model.AssetPack{
		ThemeName:        body.ThemeName,
		PrimaryIconRef:   body.PrimaryIconRef,
		SecondaryIconRef: body.SecondaryIconRef,
	}
}

func ToAction(req dto.InputRequest) model.Action {
	return model.Action{
		Kind:  model.ActionKind(req.Kind),
		Value: req.Value,
		Index: req.Index,
	}
}

func ToStateResponse(s model.Snapshot) dto.StateResponse {
	out := dto.StateResponse{
		Phase:            s.Phase.String(),
		Lives:            s.Lives,
		Score:            s.Score,
		Round:            s.Round,
		Difficulty:       s.Difficulty,
		SpeedMultiplier:  s.SpeedMultiplier,
		TimeRemainingPct: s.TimeRemainingPct,
		ActiveGame:       string(s.ActiveGame.Type),
		Instruction:      s.Instruction,
		HighScores:       ToScoreResponses(s.HighScores),
		Language:         s.Language,
		View:             s.View,
	}
	if s.LastResult != model.ResultNone {
		r := s.LastResult.String()
		out.LastResult = &r
	}
	if a := s.Assets; a != nil {
		out.Assets = &dto.AssetsBody{
			ThemeName:        a.ThemeName,
			PrimaryIconRef:   a.PrimaryIconRef,
			SecondaryIconRef: a.SecondaryIconRef,
		}
	}
	return out
}

func ToScoreResponses(entries []model.ScoreEntry) []dto.ScoreResponse {
	out := make([]dto.ScoreResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ScoreResponse{
			Timestamp: e.Timestamp.Format(time.RFC3339),
			Score:     e.Score,
		})
	}
	return out
}

func ToGamesResponse(defs []model.GameDefinition, languages []string) dto.GamesResponse {
	games := make([]dto.GameResponse, 0, len(defs))
	for _, d := range defs {
		games = append(games, dto.GameResponse{
			Type:           string(d.Type),
			Instruction:    d.Instruction,
			BaseDurationMs: d.BaseDuration.Milliseconds(),
		})
	}
	return dto.GamesResponse{Games: games, Languages: languages}
}

func ToCueResponse(ev model.Event) dto.CueResponse {
	return dto.CueResponse{
		Cue: string(ev.Cue),
		At:  ev.At.Format(time.RFC3339Nano),
	}
}
