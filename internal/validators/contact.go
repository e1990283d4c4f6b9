package validators

import "strings"

// IsEmail decide como o fluxo guiado interpreta o contato informado:
// presença de '@' distingue e-mail de telefone.
func IsEmail(contact string) bool {
	c := strings.TrimSpace(contact)
	at := strings.LastIndex(c, "@")
	return at > 0 && at < len(c)-1
}

// NormalizeContact remove espaços e baixa a caixa de e-mails; telefones
// perdem separadores comuns de digitação.
func NormalizeContact(contact string) string {
	c := strings.TrimSpace(contact)
	if IsEmail(c) {
		return strings.ToLower(c)
	}

	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return r.Replace(c)
}
