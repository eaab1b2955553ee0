package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_LowercasesAndSplits(t *testing.T) {
	tokens := Tokenize("Senior Backend Engineer (Go/Kubernetes)")
	assert.Equal(t, []string{"senior", "backend", "engineer", "kubernetes"}, tokens)
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	// "go" and "a" are length <= 2 and must be dropped
	tokens := Tokenize("a go dev with react")
	assert.Equal(t, []string{"dev", "with", "react"}, tokens)
}

func TestTokenize_NumbersKept(t *testing.T) {
	// "ec2" is length 3 and survives; "s3" is length 2 and is dropped.
	tokens := Tokenize("EC2, S3 and 100+ deployments")
	assert.Equal(t, []string{"ec2", "and", "100", "deployments"}, tokens)
}

func TestTokenize_Empty(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize("!!! ## --"))
	assert.Nil(t, Tokenize("a b c"))
}

func TestTokenize_PunctuationBecomesSpace(t *testing.T) {
	tokens := Tokenize("Node.js/React,TypeScript")
	assert.Equal(t, []string{"node", "react", "typescript"}, tokens)
}

func TestTokenSet_Deduplicates(t *testing.T) {
	set := TokenSet("react react REACT native")
	assert.Len(t, set, 2)
	assert.True(t, set["react"])
	assert.True(t, set["native"])
}

func TestTokenSet_Empty(t *testing.T) {
	assert.Nil(t, TokenSet(""))
}
