// Package wsse renders WS-Security SOAP header blocks: a Security element
// carrying an optional Timestamp and any number of security tokens.
package wsse

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Namespaces of the WS-Security 1.0 header schema
const (
	SecExtNamespace  = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	UtilityNamespace = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
)

const usernameTokenProfile = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0"

// Password type identifiers of the username token profile
const (
	PasswordTextType   = usernameTokenProfile + "#PasswordText"
	PasswordDigestType = usernameTokenProfile + "#PasswordDigest"
)

// NonceBase64Encoding identifies base64-encoded nonce content
const NonceBase64Encoding = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"

// DefaultValidity is the default timestamp validity window
const DefaultValidity = 90 * time.Second

// Token is a security token renderable into the Security header
type Token interface {
	Element() *etree.Element
}

// Security is the WS-Security header block. The zero value is not usable;
// construct with NewSecurity.
type Security struct {
	mustUnderstand bool
	useTimestamp   bool
	validity       time.Duration
	tokens         []Token
}

// NewSecurity returns a Security header with mustUnderstand set and the
// default timestamp validity.
func NewSecurity() *Security {
	return &Security{
		mustUnderstand: true,
		validity:       DefaultValidity,
	}
}

// SetMustUnderstand controls the mustUnderstand attribute on the header
func (s *Security) SetMustUnderstand(v bool) {
	s.mustUnderstand = v
}

// UseTimestamp adds a Timestamp element covering the validity window to the
// rendered header.
func (s *Security) UseTimestamp() {
	s.useTimestamp = true
}

// SetValidity sets the timestamp validity window
func (s *Security) SetValidity(d time.Duration) {
	s.validity = d
}

// AddToken appends a security token to the header
func (s *Security) AddToken(t Token) {
	s.tokens = append(s.tokens, t)
}

// Element renders the Security header element. The timestamp, when enabled,
// precedes the tokens.
func (s *Security) Element() *etree.Element {
	root := etree.NewElement("wsse:Security")
	root.CreateAttr("xmlns:wsse", SecExtNamespace)
	root.CreateAttr("xmlns:wsu", UtilityNamespace)
	if s.mustUnderstand {
		root.CreateAttr("mustUnderstand", "true")
	}

	if s.useTimestamp {
		root.AddChild(NewTimestamp(s.validity).Element())
	}
	for _, t := range s.tokens {
		root.AddChild(t.Element())
	}
	return root
}

// UsernameToken is the basic WS-Security username token
type UsernameToken struct {
	username     string
	password     string
	digest       string
	nonce        string
	nonceEncoded bool
	created      time.Time
	id           string
}

// NewUsernameToken returns a username token for the given credentials
func NewUsernameToken(username, password string) *UsernameToken {
	return &UsernameToken{
		username: username,
		password: password,
		id:       "UsernameToken-" + uuid.NewString(),
	}
}

// SetNonce sets the nonce guarding against replay attacks. An empty text
// generates one from the credentials and the current time.
func (t *UsernameToken) SetNonce(text string) {
	if text != "" {
		t.nonce = text
		return
	}
	seed := t.username + ":" + t.password + ":" + time.Now().UTC().Format(time.RFC3339)
	sum := md5.Sum([]byte(seed))
	t.nonce = hex.EncodeToString(sum[:])
}

// SetNonceEncoding controls whether the nonce declares base64 encoding
func (t *UsernameToken) SetNonceEncoding(v bool) {
	t.nonceEncoded = v
}

// SetCreated sets the token creation time. The zero time means now.
func (t *UsernameToken) SetCreated(at time.Time) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	t.created = at
}

// SetPasswordDigest switches the password element to digest form, carrying
// the given digest text instead of the clear password.
func (t *UsernameToken) SetPasswordDigest(digest string) {
	t.digest = digest
}

// UseDigest generates a nonce and creation time and derives the password
// digest from them, so the clear password never travels
func (t *UsernameToken) UseDigest() {
	t.SetNonce("")
	t.SetCreated(time.Time{})
	t.digest = DigestPassword(t.nonce, t.created.UTC().Format(time.RFC3339), t.password)
}

// Element renders the UsernameToken element
func (t *UsernameToken) Element() *etree.Element {
	root := etree.NewElement("wsse:UsernameToken")
	root.CreateAttr("wsu:Id", t.id)

	username := root.CreateElement("wsse:Username")
	username.SetText(t.username)

	password := root.CreateElement("wsse:Password")
	if t.digest != "" {
		password.CreateAttr("Type", PasswordDigestType)
		password.SetText(t.digest)
	} else {
		password.CreateAttr("Type", PasswordTextType)
		password.SetText(t.password)
	}

	if t.nonce != "" {
		nonce := root.CreateElement("wsse:Nonce")
		if t.nonceEncoded {
			nonce.CreateAttr("EncodingType", NonceBase64Encoding)
		}
		nonce.SetText(t.nonce)
	}
	if !t.created.IsZero() {
		created := root.CreateElement("wsu:Created")
		created.SetText(t.created.UTC().Format(time.RFC3339))
	}
	return root
}

// Timestamp is the WS-Security timestamp token
type Timestamp struct {
	created time.Time
	expires time.Time
	id      string
}

// NewTimestamp returns a timestamp valid from now for the given window
func NewTimestamp(validity time.Duration) *Timestamp {
	now := time.Now().UTC()
	return &Timestamp{
		created: now,
		expires: now.Add(validity),
		id:      "Timestamp-" + uuid.NewString(),
	}
}

// Created returns the start of the validity window
func (t *Timestamp) Created() time.Time {
	return t.created
}

// Expires returns the end of the validity window
func (t *Timestamp) Expires() time.Time {
	return t.expires
}

// Element renders the Timestamp element
func (t *Timestamp) Element() *etree.Element {
	root := etree.NewElement("wsu:Timestamp")
	root.CreateAttr("wsu:Id", t.id)

	created := root.CreateElement("wsu:Created")
	created.SetText(t.created.Format(time.RFC3339))
	expires := root.CreateElement("wsu:Expires")
	expires.SetText(t.expires.Format(time.RFC3339))
	return root
}

// DigestPassword computes the password digest defined by the username token
// profile: Base64(SHA-1(nonce + created + password)).
func DigestPassword(nonce, created, password string) string {
	h := sha1.New()
	h.Write([]byte(nonce))
	h.Write([]byte(created))
	h.Write([]byte(password))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
