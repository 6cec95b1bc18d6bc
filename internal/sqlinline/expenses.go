package sqlinline

const QGetExpense = `--sql 33c92445-4684-4336-9788-f46ae812c8b6
select id, collective_id, user_id, amount, currency, description, status, incurred_at, created_at
from expenses
where id = $1;
`

const QMarkExpensePaid = `--sql 9ae6c7de-d606-48e2-ba89-98581408b617
update expenses
set status = 'PAID', updated_at = now()
where id = $1;
`
