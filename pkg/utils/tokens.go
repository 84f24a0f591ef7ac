package utils

import (
	"github.com/pkoukk/tiktoken-go"
)

// NumTokens estimates how many tokens text costs for the given model.
// Unknown models fall back to the cl100k_base encoding.
func NumTokens(model, text string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			return 0, err
		}
	}

	return len(tkm.Encode(text, nil, nil)), nil
}
