// Package e2e гоняет страницы магазина в настоящем браузере. Тесты
// запускаются только с E2E=1; адрес и браузер берутся из окружения.
package e2e
