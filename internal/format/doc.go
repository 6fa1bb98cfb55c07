// Package format serializes packed lines back into text.
//
// Назначение: последняя стадия конвейера, превращает токены обратно в строки.
// Не делает: упаковку по ширине, классификацию переносов или IO.
// Зависимости: internal/layout, internal/token.
package format
