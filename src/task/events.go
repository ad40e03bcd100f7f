package task

type Stage string

const (
	StageFetch   Stage = "fetch"
	StageDecode  Stage = "decode"
	StageRemove  Stage = "remove"
	StageEncode  Stage = "encode"
	StagePublish Stage = "publish"
)
