package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckSenha compara hash bcrypt com a senha em texto e retorna true se bater
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

const charsSenha = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GerarSenhaTemporaria gera uma senha aleatória de 12 caracteres (sem 0/O, 1/l/I).
func GerarSenhaTemporaria() (string, error) {
	const tamanho = 12
	out := make([]byte, tamanho)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charsSenha))))
		if err != nil {
			return "", err
		}
		out[i] = charsSenha[n.Int64()]
	}
	return string(out), nil
}
